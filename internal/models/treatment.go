package models

import "time"

// TreatmentStatus represents the lifecycle state of a treatment plan.
type TreatmentStatus string

const (
	TreatmentActive    TreatmentStatus = "active"
	TreatmentFinished  TreatmentStatus = "finished"
	TreatmentCancelled TreatmentStatus = "cancelled"
)

// TreatmentPlan represents a multi-session course of treatment prescribed by
// a physician. Sessions are spaced FrequencyDays apart starting at StartDate.
type TreatmentPlan struct {
	BaseModel
	PatientID         string          `gorm:"size:36;index" json:"patientId"`
	PhysicianID       string          `gorm:"size:36;index" json:"physicianId"`
	Diagnosis         string          `gorm:"type:text" json:"diagnosis"`
	SessionCount      uint            `json:"sessionCount"`
	SessionsCompleted uint            `gorm:"default:0" json:"sessionsCompleted"`
	FrequencyDays     uint            `json:"frequencyDays"`
	StartDate         time.Time       `gorm:"type:date" json:"startDate"`
	EstimatedEndDate  *time.Time      `gorm:"type:date" json:"estimatedEndDate,omitempty"`
	Status            TreatmentStatus `gorm:"size:10;default:'active'" json:"status"`
	Notes             string          `gorm:"type:text" json:"notes"`

	Patient   Patient            `gorm:"foreignKey:PatientID" json:"-"`
	Physician Physician          `gorm:"foreignKey:PhysicianID" json:"-"`
	Sessions  []TreatmentSession `gorm:"foreignKey:TreatmentPlanID" json:"sessions,omitempty"`
}

// EstimateEndDate computes the expected finish date from the session count
// and frequency.
func (t *TreatmentPlan) EstimateEndDate() *time.Time {
	if t.SessionCount == 0 || t.FrequencyDays == 0 {
		return nil
	}
	end := t.StartDate.AddDate(0, 0, int(t.FrequencyDays)*(int(t.SessionCount)-1))
	return &end
}

// Progress returns the completion percentage of the plan.
func (t *TreatmentPlan) Progress() int {
	if t.SessionCount == 0 {
		return 0
	}
	return int(t.SessionsCompleted * 100 / t.SessionCount)
}

// SessionStatus represents the state of a single treatment session.
type SessionStatus string

const (
	SessionPending     SessionStatus = "pending"
	SessionCompleted   SessionStatus = "completed"
	SessionCancelled   SessionStatus = "cancelled"
	SessionRescheduled SessionStatus = "rescheduled"
)

// TreatmentSession is one numbered session within a treatment plan,
// optionally tied to the appointment that delivered it.
type TreatmentSession struct {
	BaseModel
	TreatmentPlanID string        `gorm:"size:36;index:idx_sessions_plan_number,unique" json:"treatmentPlanId"`
	AppointmentID   *string       `gorm:"size:36" json:"appointmentId,omitempty"`
	Number          uint          `gorm:"index:idx_sessions_plan_number,unique" json:"number"`
	ScheduledFor    time.Time     `gorm:"type:date" json:"scheduledFor"`
	CompletedOn     *time.Time    `gorm:"type:date" json:"completedOn,omitempty"`
	Status          SessionStatus `gorm:"size:15;default:'pending'" json:"status"`
	Observations    string        `gorm:"type:text" json:"observations"`
	Evolution       string        `gorm:"type:text" json:"evolution"`

	TreatmentPlan TreatmentPlan `gorm:"foreignKey:TreatmentPlanID" json:"-"`
	Appointment   *Appointment  `gorm:"foreignKey:AppointmentID" json:"-"`
}
