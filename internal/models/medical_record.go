package models

import "time"

// MedicalRecord represents one clinical history entry for a patient.
type MedicalRecord struct {
	BaseModel
	PatientID    string    `gorm:"size:36;index" json:"patientId"`
	PhysicianID  string    `gorm:"size:36;index" json:"physicianId"`
	RecordDate   time.Time `json:"recordDate"`
	Diagnosis    string    `gorm:"type:text" json:"diagnosis"`
	Treatment    string    `gorm:"type:text" json:"treatment"`
	Observations string    `gorm:"type:text" json:"observations"`

	Patient   Patient   `gorm:"foreignKey:PatientID" json:"-"`
	Physician Physician `gorm:"foreignKey:PhysicianID" json:"-"`
}
