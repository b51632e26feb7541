package models

import "time"

// ReferralStatus represents the lifecycle state of a referral.
type ReferralStatus string

const (
	ReferralPending ReferralStatus = "pending"
	ReferralUsed    ReferralStatus = "used"
	ReferralExpired ReferralStatus = "expired"
)

// Referral authorizes a patient to book into a specialty that is not directly
// accessible. It is consumed (marked used) at most once, by the booking that
// it authorizes.
type Referral struct {
	BaseModel
	PatientID     string         `gorm:"size:36;index" json:"patientId"`
	PhysicianID   string         `gorm:"size:36;index" json:"physicianId"` // referring physician
	SpecialtyID   string         `gorm:"size:36;index" json:"specialtyId"` // destination specialty
	IssuedOn      time.Time      `gorm:"type:date" json:"issuedOn"`
	ValidityDays  uint           `gorm:"default:30" json:"validityDays"`
	Status        ReferralStatus `gorm:"size:15;default:'pending'" json:"status"`
	Motive        string         `gorm:"type:text" json:"motive"`
	FollowUpGiven bool           `gorm:"default:false" json:"followUpGiven"`

	Patient   Patient   `gorm:"foreignKey:PatientID" json:"-"`
	Physician Physician `gorm:"foreignKey:PhysicianID" json:"-"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"-"`
}

// ExpiresOn returns the last date on which the referral is usable.
func (r *Referral) ExpiresOn() time.Time {
	return r.IssuedOn.AddDate(0, 0, int(r.ValidityDays))
}

// UsableOn reports whether the referral can authorize a booking made at the
// given moment: it must still be pending and within its validity period. The
// appointment being booked may itself fall past the validity period.
func (r *Referral) UsableOn(date time.Time) bool {
	if r.Status != ReferralPending {
		return false
	}
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ey, em, ed := r.ExpiresOn().Date()
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return !day.After(expiry)
}
