// Package fixtures provides parameterized test data builders. It replaces
// the pile of one-off seed scripts the system used to carry: tests compose
// these functions instead of loading canned dumps.
package fixtures

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

var sequence int

func next() int {
	sequence++
	return sequence
}

// NewUser creates a user with the given role and a unique email.
func NewUser(db *gorm.DB, role models.Role) *models.User {
	n := next()
	user := &models.User{
		Email:          fmt.Sprintf("user%d@example.test", n),
		FirstName:      fmt.Sprintf("First%d", n),
		LastName:       fmt.Sprintf("Last%d", n),
		DocumentNumber: fmt.Sprintf("%08d", n),
		Role:           role,
	}
	if err := user.SetPassword("password123"); err != nil {
		panic(err)
	}
	if err := db.Create(user).Error; err != nil {
		panic(err)
	}
	return user
}

// NewSpecialty creates a specialty; directAccess controls whether bookings
// into it require a referral.
func NewSpecialty(db *gorm.DB, directAccess bool) *models.Specialty {
	specialty := &models.Specialty{
		Name:         fmt.Sprintf("Specialty %d", next()),
		DirectAccess: directAccess,
	}
	if err := db.Create(specialty).Error; err != nil {
		panic(err)
	}
	return specialty
}

// NewPhysician creates a physician profile (plus backing user) in the given
// specialty.
func NewPhysician(db *gorm.DB, specialty *models.Specialty) *models.Physician {
	user := NewUser(db, models.RolePhysician)
	physician := &models.Physician{
		UserID:      user.ID,
		LicenseCode: fmt.Sprintf("CMP%05d", next()),
		SpecialtyID: specialty.ID,
	}
	if err := db.Create(physician).Error; err != nil {
		panic(err)
	}
	physician.User = *user
	physician.Specialty = *specialty
	return physician
}

// NewPatient creates a patient profile plus backing user.
func NewPatient(db *gorm.DB) *models.Patient {
	user := NewUser(db, models.RolePatient)
	patient := &models.Patient{
		UserID:          user.ID,
		BookingStanding: models.StandingActive,
	}
	if err := db.Create(patient).Error; err != nil {
		panic(err)
	}
	patient.User = *user
	return patient
}

// NewRoom creates a consultation room with the given code.
func NewRoom(db *gorm.DB, code string) *models.Room {
	room := &models.Room{Code: code, Floor: "1", Area: "Outpatient"}
	if err := db.Create(room).Error; err != nil {
		panic(err)
	}
	return room
}

// RecurringWindow creates an active weekly availability window.
func RecurringWindow(db *gorm.DB, physician *models.Physician, weekday int, start, end string, shift models.ShiftLabel) *models.AvailabilityWindow {
	window := &models.AvailabilityWindow{
		PhysicianID: physician.ID,
		Weekday:     &weekday,
		StartTime:   start,
		EndTime:     end,
		Shift:       shift,
		Active:      true,
	}
	if err := db.Create(window).Error; err != nil {
		panic(err)
	}
	return window
}

// SpecialWindow creates an active date-specific availability window.
func SpecialWindow(db *gorm.DB, physician *models.Physician, date time.Time, start, end string, shift models.ShiftLabel) *models.AvailabilityWindow {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	window := &models.AvailabilityWindow{
		PhysicianID: physician.ID,
		SpecialDate: &day,
		StartTime:   start,
		EndTime:     end,
		Shift:       shift,
		Active:      true,
	}
	if err := db.Create(window).Error; err != nil {
		panic(err)
	}
	return window
}

// NewAppointment creates an appointment in the given status.
func NewAppointment(db *gorm.DB, patient *models.Patient, physician *models.Physician, room *models.Room, date time.Time, start, end string, status models.AppointmentStatus) *models.Appointment {
	appt := &models.Appointment{
		PatientID:   patient.ID,
		PhysicianID: physician.ID,
		RoomID:      room.ID,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:   start,
		EndTime:     end,
		Status:      status,
		Reason:      "checkup",
		BookedByID:  patient.UserID,
	}
	if err := db.Create(appt).Error; err != nil {
		panic(err)
	}
	return appt
}

// NewReferral creates a referral issued on the given date.
func NewReferral(db *gorm.DB, patient *models.Patient, physician *models.Physician, specialty *models.Specialty, issuedOn time.Time, validityDays uint) *models.Referral {
	referral := &models.Referral{
		PatientID:    patient.ID,
		PhysicianID:  physician.ID,
		SpecialtyID:  specialty.ID,
		IssuedOn:     time.Date(issuedOn.Year(), issuedOn.Month(), issuedOn.Day(), 0, 0, 0, 0, time.UTC),
		ValidityDays: validityDays,
		Status:       models.ReferralPending,
		Motive:       "evaluation",
	}
	if err := db.Create(referral).Error; err != nil {
		panic(err)
	}
	return referral
}
