package models

// Specialty represents a medical specialty offered by the hospital.
// DirectAccess specialties can be booked by patients without a referral;
// every other specialty requires a current, unused referral.
type Specialty struct {
	BaseModel
	Name         string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	DirectAccess bool   `gorm:"default:false" json:"directAccess"`

	Physicians []Physician `gorm:"foreignKey:SpecialtyID" json:"-"`
}

// Physician represents a medical staff member exposing bookable availability.
type Physician struct {
	BaseModel
	UserID      string `gorm:"size:36;uniqueIndex" json:"userId"`
	LicenseCode string `gorm:"size:10" json:"licenseCode"`
	SpecialtyID string `gorm:"size:36;index" json:"specialtyId"`

	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`

	Windows      []AvailabilityWindow `gorm:"foreignKey:PhysicianID" json:"-"`
	Appointments []Appointment        `gorm:"foreignKey:PhysicianID" json:"-"`
}

// BookingStanding describes whether a patient may self-book appointments.
type BookingStanding string

const (
	StandingActive     BookingStanding = "active"
	StandingSupervised BookingStanding = "supervised"
	StandingBlocked    BookingStanding = "blocked"
)

// Patient represents a registered patient profile.
type Patient struct {
	BaseModel
	UserID              string          `gorm:"size:36;uniqueIndex" json:"userId"`
	ConsecutiveAbsences uint            `gorm:"default:0" json:"consecutiveAbsences"`
	BookingStanding     BookingStanding `gorm:"size:20;default:'active'" json:"bookingStanding"`

	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
	Referrals    []Referral    `gorm:"foreignKey:PatientID" json:"-"`
}

// Room represents a consultation room.
type Room struct {
	BaseModel
	Code  string `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Floor string `gorm:"size:10" json:"floor"`
	Area  string `gorm:"size:100" json:"area"`
}
