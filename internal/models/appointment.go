package models

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusAttended  AppointmentStatus = "attended"
	StatusCancelled AppointmentStatus = "cancelled"
)

// BlocksSlot reports whether an appointment in this status occupies the
// physician's time. Cancelled appointments never block rebooking.
func (s AppointmentStatus) BlocksSlot() bool {
	return s == StatusRequested || s == StatusConfirmed || s == StatusAttended
}

// IsTerminal reports whether no further status transition is allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusAttended || s == StatusCancelled
}

// Appointment represents a scheduled (or historical) encounter between one
// patient and one physician. For a given physician and date, appointments
// whose status still blocks the slot are pairwise non-overlapping in
// [StartTime, EndTime).
type Appointment struct {
	BaseModel
	PatientID   string            `gorm:"size:36;index" json:"patientId"`
	PhysicianID string            `gorm:"size:36;index:idx_appointments_physician_date" json:"physicianId"`
	RoomID      string            `gorm:"size:36" json:"roomId"`
	Date        time.Time         `gorm:"type:date;index:idx_appointments_physician_date" json:"date"`
	StartTime   string            `gorm:"size:5;not null" json:"startTime"` // "HH:MM"
	EndTime     string            `gorm:"size:5;not null" json:"endTime"`   // "HH:MM"
	Status      AppointmentStatus `gorm:"size:20;default:'requested'" json:"status"`
	Reason      string            `gorm:"type:text" json:"reason"`

	Attended        *bool  `json:"attended,omitempty"`
	JustifiedAbsent bool   `gorm:"default:false" json:"justifiedAbsent"`
	AbsenceReason   string `gorm:"type:text" json:"absenceReason,omitempty"`

	ReferralID      *string `gorm:"size:36" json:"referralId,omitempty"`
	TreatmentPlanID *string `gorm:"size:36" json:"treatmentPlanId,omitempty"`
	BookedByID      string  `gorm:"size:36" json:"bookedById"`

	// Relations
	Patient   Patient   `gorm:"foreignKey:PatientID" json:"-"`
	Physician Physician `gorm:"foreignKey:PhysicianID" json:"-"`
	Room      Room      `gorm:"foreignKey:RoomID" json:"-"`
	Referral  *Referral `gorm:"foreignKey:ReferralID" json:"-"`
	BookedBy  User      `gorm:"foreignKey:BookedByID" json:"-"`
}
