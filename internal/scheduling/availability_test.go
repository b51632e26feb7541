package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-management-server/internal/fixtures"
	"hospital-management-server/internal/models"
)

func weekdayPtr(d int) *int { return &d }

func TestCreateWindowWeekdayDateRule(t *testing.T) {
	db := newTestDB(t)
	service := NewAvailabilityService(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("neither weekday nor date", func(t *testing.T) {
		_, err := service.CreateWindow(WindowInput{
			PhysicianID: physician.ID,
			StartTime:   "08:00", EndTime: "12:00",
			Shift: models.ShiftMorning,
		})
		assert.ErrorIs(t, err, ErrWindowRule)
	})

	t.Run("both weekday and date", func(t *testing.T) {
		_, err := service.CreateWindow(WindowInput{
			PhysicianID: physician.ID,
			Weekday:     weekdayPtr(0), SpecialDate: &date,
			StartTime: "08:00", EndTime: "12:00",
			Shift: models.ShiftMorning,
		})
		assert.ErrorIs(t, err, ErrWindowRule)
	})

	t.Run("weekday out of range", func(t *testing.T) {
		_, err := service.CreateWindow(WindowInput{
			PhysicianID: physician.ID,
			Weekday:     weekdayPtr(7),
			StartTime:   "08:00", EndTime: "12:00",
			Shift: models.ShiftMorning,
		})
		assert.ErrorIs(t, err, ErrWindowRule)
	})
}

func TestCreateWindowTimeRangeRule(t *testing.T) {
	db := newTestDB(t)
	service := NewAvailabilityService(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))

	_, err := service.CreateWindow(WindowInput{
		PhysicianID: physician.ID,
		Weekday:     weekdayPtr(0),
		StartTime:   "12:00", EndTime: "08:00",
		Shift: models.ShiftMorning,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange, "inverted morning range is rejected")

	window, err := service.CreateWindow(WindowInput{
		PhysicianID: physician.ID,
		Weekday:     weekdayPtr(0),
		StartTime:   "22:00", EndTime: "06:00",
		Shift: models.ShiftNight,
	})
	require.NoError(t, err, "night shifts may wrap midnight")
	assert.True(t, window.Active)
}

func TestCreateWindowOverlapConflict(t *testing.T) {
	db := newTestDB(t)
	service := NewAvailabilityService(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))

	first, err := service.CreateWindow(WindowInput{
		PhysicianID: physician.ID,
		Weekday:     weekdayPtr(0),
		StartTime:   "08:00", EndTime: "12:00",
		Shift: models.ShiftMorning,
	})
	require.NoError(t, err)

	_, err = service.CreateWindow(WindowInput{
		PhysicianID: physician.ID,
		Weekday:     weekdayPtr(0),
		StartTime:   "11:00", EndTime: "15:00",
		Shift: models.ShiftAfternoon,
	})
	var conflict *ScheduleConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.Window.ID)

	// Touching windows are fine: intervals are half-open.
	_, err = service.CreateWindow(WindowInput{
		PhysicianID: physician.ID,
		Weekday:     weekdayPtr(0),
		StartTime:   "12:00", EndTime: "16:00",
		Shift: models.ShiftAfternoon,
	})
	assert.NoError(t, err)

	// Same hours on another weekday are fine.
	_, err = service.CreateWindow(WindowInput{
		PhysicianID: physician.ID,
		Weekday:     weekdayPtr(1),
		StartTime:   "08:00", EndTime: "12:00",
		Shift: models.ShiftMorning,
	})
	assert.NoError(t, err)
}

func TestCreateWindowRecurringAndSpecialCoexist(t *testing.T) {
	db := newTestDB(t)
	service := NewAvailabilityService(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	weekday := models.MondayBasedWeekday(date)

	_, err := service.CreateWindow(WindowInput{
		PhysicianID: physician.ID,
		Weekday:     &weekday,
		StartTime:   "08:00", EndTime: "12:00",
		Shift: models.ShiftMorning,
	})
	require.NoError(t, err)

	// A special-date window for the same hours does not conflict with the
	// recurring rule; it reads as an extra shift for that date.
	_, err = service.CreateWindow(WindowInput{
		PhysicianID: physician.ID,
		SpecialDate: &date,
		StartTime:   "08:00", EndTime: "12:00",
		Shift: models.ShiftMorning,
	})
	assert.NoError(t, err)

	windows, err := service.EffectiveWindows(physician.ID, date)
	require.NoError(t, err)
	assert.Len(t, windows, 2, "both windows apply on the special date")
}

func TestDeactivateWindowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewAvailabilityService(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))
	window := fixtures.RecurringWindow(db, physician, 0, "08:00", "12:00", models.ShiftMorning)

	require.NoError(t, service.DeactivateWindow(window.ID, physician.ID))
	require.NoError(t, service.DeactivateWindow(window.ID, physician.ID), "second deactivation is a no-op")

	var reloaded models.AvailabilityWindow
	require.NoError(t, db.First(&reloaded, "id = ?", window.ID).Error)
	assert.False(t, reloaded.Active)

	other := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))
	assert.ErrorIs(t, service.DeactivateWindow(window.ID, other.ID), ErrNotFound,
		"windows are owner-scoped")
}

func TestReactivateWindowReChecksOverlap(t *testing.T) {
	db := newTestDB(t)
	service := NewAvailabilityService(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))
	window := fixtures.RecurringWindow(db, physician, 0, "08:00", "12:00", models.ShiftMorning)

	require.NoError(t, service.DeactivateWindow(window.ID, physician.ID))

	// While the original is off, an overlapping window may be created.
	_, err := service.CreateWindow(WindowInput{
		PhysicianID: physician.ID,
		Weekday:     weekdayPtr(0),
		StartTime:   "10:00", EndTime: "14:00",
		Shift: models.ShiftMorning,
	})
	require.NoError(t, err)

	var conflict *ScheduleConflictError
	assert.ErrorAs(t, service.ReactivateWindow(window.ID, physician.ID), &conflict,
		"reactivation must not re-introduce an overlap")

	var reloaded models.AvailabilityWindow
	require.NoError(t, db.First(&reloaded, "id = ?", window.ID).Error)
	assert.False(t, reloaded.Active, "a failed reactivation leaves the window off")
}

func TestEffectiveWindowsSelection(t *testing.T) {
	db := newTestDB(t)
	service := NewAvailabilityService(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	weekday := models.MondayBasedWeekday(date)
	otherDate := date.AddDate(0, 0, 1)

	recurring := fixtures.RecurringWindow(db, physician, weekday, "08:00", "12:00", models.ShiftMorning)
	special := fixtures.SpecialWindow(db, physician, date, "14:00", "17:00", models.ShiftAfternoon)
	fixtures.SpecialWindow(db, physician, otherDate, "08:00", "12:00", models.ShiftMorning)

	inactive := fixtures.RecurringWindow(db, physician, weekday, "18:00", "20:00", models.ShiftAfternoon)
	require.NoError(t, service.DeactivateWindow(inactive.ID, physician.ID))

	windows, err := service.EffectiveWindows(physician.ID, date)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, recurring.ID, windows[0].ID, "windows come back ordered by start time")
	assert.Equal(t, special.ID, windows[1].ID)
}
