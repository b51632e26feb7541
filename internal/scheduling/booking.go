package scheduling

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

// Notifier delivers a notification to a user. Delivery is fire-and-forget:
// implementations must not fail the calling operation.
type Notifier interface {
	Notify(userID, message string, kind models.NotificationKind, important bool, relatedKind, relatedID string)
}

// BookingSource tells who initiated a booking; it decides the initial status.
type BookingSource string

const (
	SourcePatient    BookingSource = "patient"    // self-service, books as requested
	SourceAdmissions BookingSource = "admissions" // clerk-booked, books as confirmed
)

// BookingRequest carries everything needed to book one appointment.
type BookingRequest struct {
	PatientID   string
	PhysicianID string
	RoomID      string // optional; empty means "use the room policy"
	Date        time.Time
	StartTime   string // "HH:MM"
	EndTime     string // "HH:MM"
	Reason      string
	ReferralID  *string // optional; a matching pending referral is searched if nil
	BookedByID  string
	Source      BookingSource
}

// Booker is the booking conflict guard: the sole authority on whether an
// appointment may be written. The slot generator is only an advisory read,
// so the guard re-checks the requested interval against current occupancy
// inside a transaction, with bookings for the same (physician, date)
// serialized on a per-key mutex.
type Booker struct {
	DB       *gorm.DB
	Notifier Notifier
	locks    keyedMutex

	// now supplies the booking moment; referral validity is judged against
	// it, never against the appointment date. Overridable in tests.
	now func() time.Time
}

// NewBooker creates a new Booker.
func NewBooker(db *gorm.DB, notifier Notifier) *Booker {
	return &Booker{DB: db, Notifier: notifier, now: time.Now}
}

// Book validates and persists one appointment. Precondition failures map to
// ErrInvalidTimeRange, ErrReferralRequired, ErrPatientBlocked,
// *SlotConflictError or ErrNotFound; any of them leaves the database
// untouched. On success the consumed referral (if any) is marked used in the
// same transaction and both parties are notified.
func (b *Booker) Book(req BookingRequest) (*models.Appointment, error) {
	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	// Bookable slots never span midnight: a wrap-around window is split into
	// same-day segments before slots are generated, so a strict ordering
	// check is the right rule here.
	if end <= start {
		return nil, ErrInvalidTimeRange
	}
	requested := Span{Start: start, End: end}

	unlock := b.locks.lock(lockKey(req.PhysicianID, req.Date))
	defer unlock()

	var created models.Appointment
	var patientUser, physicianUser models.User

	err = b.DB.Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.Preload("User").First(&patient, "id = ?", req.PatientID).Error; err != nil {
			return notFoundOr(err)
		}
		var physician models.Physician
		if err := tx.Preload("User").Preload("Specialty").First(&physician, "id = ?", req.PhysicianID).Error; err != nil {
			return notFoundOr(err)
		}
		patientUser = patient.User
		physicianUser = physician.User

		if req.Source == SourcePatient && patient.BookingStanding == models.StandingBlocked {
			return ErrPatientBlocked
		}

		room, err := AssignRoom(tx, req.RoomID)
		if err != nil {
			return err
		}

		var referral *models.Referral
		if !physician.Specialty.DirectAccess {
			referral, err = usableReferral(tx, patient.ID, physician.SpecialtyID, b.now(), req.ReferralID)
			if err != nil {
				return err
			}
		}

		existing, err := blockingAppointments(tx, req.PhysicianID, req.Date)
		if err != nil {
			return err
		}
		for _, appt := range existing {
			otherStart, err := ParseClock(appt.StartTime)
			if err != nil {
				return err
			}
			otherEnd, err := ParseClock(appt.EndTime)
			if err != nil {
				return err
			}
			if requested.Overlaps(Span{Start: otherStart, End: otherEnd}) {
				return &SlotConflictError{
					AppointmentID: appt.ID,
					StartTime:     appt.StartTime,
					EndTime:       appt.EndTime,
				}
			}
		}

		status := models.StatusRequested
		if req.Source == SourceAdmissions {
			status = models.StatusConfirmed
		}

		created = models.Appointment{
			PatientID:   patient.ID,
			PhysicianID: physician.ID,
			RoomID:      room.ID,
			Date:        dateOnly(req.Date),
			StartTime:   requested.Start.String(),
			EndTime:     requested.End.String(),
			Status:      status,
			Reason:      req.Reason,
			BookedByID:  req.BookedByID,
		}
		if referral != nil {
			created.ReferralID = &referral.ID
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		// At-most-once consumption: the referral flips to used in the same
		// transaction that creates the appointment, and only while it is
		// still pending. Bookings for different days take different locks,
		// so the status guard is what stops two of them consuming one
		// referral.
		if referral != nil {
			result := tx.Model(&models.Referral{}).
				Where("id = ? AND status = ?", referral.ID, models.ReferralPending).
				Updates(map[string]interface{}{"status": models.ReferralUsed, "follow_up_given": true})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrReferralRequired
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	when := fmt.Sprintf("%s at %s", created.Date.Format("02/01/2006"), created.StartTime)
	b.Notifier.Notify(patientUser.ID,
		fmt.Sprintf("Your appointment with Dr. %s has been scheduled for %s.", physicianUser.FullName(), when),
		models.NotifyConfirmation, true, "appointment", created.ID)
	b.Notifier.Notify(physicianUser.ID,
		fmt.Sprintf("New appointment with %s scheduled for %s.", patientUser.FullName(), when),
		models.NotifyInformation, false, "appointment", created.ID)

	return &created, nil
}

// Cancel transitions a requested or confirmed appointment to cancelled.
// Cancellation is only permitted while the appointment date is strictly in
// the future relative to now.
func (b *Booker) Cancel(appointmentID string, now time.Time) (*models.Appointment, error) {
	var appt models.Appointment
	err := b.DB.Preload("Patient.User").Preload("Physician.User").
		First(&appt, "id = ?", appointmentID).Error
	if err != nil {
		return nil, notFoundOr(err)
	}

	if appt.Status.IsTerminal() {
		return nil, ErrTerminalStatus
	}
	if !dateOnly(appt.Date).After(dateOnly(now)) {
		return nil, ErrCancelTooLate
	}

	if err := b.DB.Model(&appt).Update("status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}
	appt.Status = models.StatusCancelled

	b.Notifier.Notify(appt.Physician.User.ID,
		fmt.Sprintf("%s cancelled the appointment of %s at %s.",
			appt.Patient.User.FullName(), appt.Date.Format("02/01/2006"), appt.StartTime),
		models.NotifyCancellation, true, "appointment", appt.ID)

	return &appt, nil
}

// Confirm transitions a requested appointment to confirmed.
func (b *Booker) Confirm(appointmentID string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := b.DB.First(&appt, "id = ?", appointmentID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if appt.Status != models.StatusRequested {
		return nil, ErrTerminalStatus
	}
	if err := b.DB.Model(&appt).Update("status", models.StatusConfirmed).Error; err != nil {
		return nil, err
	}
	appt.Status = models.StatusConfirmed
	return &appt, nil
}

// AttendanceInput records the outcome of an encounter.
type AttendanceInput struct {
	Attended      bool
	Justified     bool   // only meaningful for absences
	AbsenceReason string // only meaningful for absences
}

// MaxConsecutiveAbsences is the strike count at which a patient's booking
// standing becomes blocked.
const MaxConsecutiveAbsences = 3

// MarkAttendance records whether the patient showed up. An attended
// encounter is terminal and clears the patient's absence streak. An
// unjustified no-show increments it and blocks the patient's self-booking
// once the streak reaches MaxConsecutiveAbsences.
func (b *Booker) MarkAttendance(appointmentID string, in AttendanceInput) (*models.Appointment, error) {
	var appt models.Appointment
	if err := b.DB.Preload("Patient").First(&appt, "id = ?", appointmentID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if appt.Status.IsTerminal() {
		return nil, ErrTerminalStatus
	}

	err := b.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"attended": in.Attended}
		if in.Attended {
			updates["status"] = models.StatusAttended
		} else {
			updates["justified_absent"] = in.Justified
			updates["absence_reason"] = in.AbsenceReason
		}
		if err := tx.Model(&appt).Updates(updates).Error; err != nil {
			return err
		}

		patientUpdates := map[string]interface{}{}
		switch {
		case in.Attended:
			patientUpdates["consecutive_absences"] = 0
		case in.Justified:
			// justified absences do not count toward the strike limit
		default:
			streak := appt.Patient.ConsecutiveAbsences + 1
			patientUpdates["consecutive_absences"] = streak
			if streak >= MaxConsecutiveAbsences {
				patientUpdates["booking_standing"] = models.StandingBlocked
			}
		}
		if len(patientUpdates) > 0 {
			if err := tx.Model(&appt.Patient).Updates(patientUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := b.DB.First(&appt, "id = ?", appointmentID).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// AssignRoom resolves the room for a booking. The explicitly requested room
// wins; otherwise the room with the lowest code is used, which keeps the
// default deterministic instead of depending on insertion order.
func AssignRoom(tx *gorm.DB, preferredID string) (*models.Room, error) {
	var room models.Room
	query := tx.Order("code asc")
	if preferredID != "" {
		query = tx.Where("id = ?", preferredID)
	}
	if err := query.First(&room).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &room, nil
}

// usableReferral finds the referral that authorizes booking into the given
// specialty, or fails with ErrReferralRequired. Validity is judged at the
// booking moment (now), not at the appointment date: a referral issued today
// authorizes booking an appointment months out, as long as the booking itself
// happens within the validity period. A caller supplied referral id must
// belong to the patient and the specialty.
func usableReferral(tx *gorm.DB, patientID, specialtyID string, now time.Time, referralID *string) (*models.Referral, error) {
	if referralID != nil {
		var referral models.Referral
		err := tx.First(&referral, "id = ? AND patient_id = ? AND specialty_id = ?",
			*referralID, patientID, specialtyID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrReferralRequired
			}
			return nil, err
		}
		if !referral.UsableOn(now) {
			return nil, ErrReferralRequired
		}
		return &referral, nil
	}

	var referrals []models.Referral
	err := tx.Where("patient_id = ? AND specialty_id = ? AND status = ?",
		patientID, specialtyID, models.ReferralPending).
		Order("issued_on asc").
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	for i := range referrals {
		if referrals[i].UsableOn(now) {
			return &referrals[i], nil
		}
	}
	return nil, ErrReferralRequired
}

func notFoundOr(err error) error {
	if err == gorm.ErrRecordNotFound {
		return ErrNotFound
	}
	return err
}

func lockKey(physicianID string, date time.Time) string {
	return physicianID + "|" + dateOnly(date).Format("2006-01-02")
}

// keyedMutex serializes writers on a per-(physician, date) key so two
// concurrent bookings for overlapping times cannot both pass the conflict
// re-check. Readers never take the lock. Entries are reference counted and
// evicted once the last holder releases, so the map does not accumulate one
// mutex per key ever booked.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	lock, ok := k.locks[key]
	if !ok {
		lock = &keyedLock{}
		k.locks[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	lock.Lock()
	return func() {
		lock.Unlock()
		k.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
