package scheduling

import (
	"errors"
	"fmt"

	"hospital-management-server/internal/models"
)

// Sentinel errors returned by the scheduling core. All of them are
// caller-facing and recoverable; the HTTP layer maps them onto status codes.
var (
	// ErrInvalidTimeRange is returned when end <= start and the wrap
	// exception does not apply.
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrWindowRule is returned when an availability window does not set
	// exactly one of weekday or special date.
	ErrWindowRule = errors.New("exactly one of weekday or special date must be set")

	// ErrReferralRequired is returned when booking into a non-direct-access
	// specialty without a current, unused referral.
	ErrReferralRequired = errors.New("a current referral is required for this specialty")

	// ErrPatientBlocked is returned when a patient whose booking standing is
	// blocked attempts to self-book.
	ErrPatientBlocked = errors.New("patient is blocked from booking appointments")

	// ErrTerminalStatus is returned on any attempt to transition an
	// appointment out of attended or cancelled.
	ErrTerminalStatus = errors.New("appointment status can no longer change")

	// ErrCancelTooLate is returned when cancelling an appointment whose date
	// is not strictly in the future.
	ErrCancelTooLate = errors.New("appointments can only be cancelled before their date")

	// ErrNotFound is returned when a referenced physician, patient, room,
	// window, referral or appointment does not exist.
	ErrNotFound = errors.New("record not found")
)

// ScheduleConflictError reports that a new or reactivated availability window
// overlaps an existing active window for the same physician and day.
type ScheduleConflictError struct {
	Window models.AvailabilityWindow // the colliding window
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("window overlaps existing availability %s-%s (id %s)",
		e.Window.StartTime, e.Window.EndTime, e.Window.ID)
}

// SlotConflictError reports that a requested appointment collides with an
// existing non-cancelled appointment, naming the occupied time range so the
// caller can pick another slot.
type SlotConflictError struct {
	AppointmentID string
	StartTime     string
	EndTime       string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("physician already has an appointment from %s to %s", e.StartTime, e.EndTime)
}
