package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-management-server/internal/fixtures"
	"hospital-management-server/internal/models"
)

func slotStarts(slots []Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, slot := range slots {
		starts = append(starts, slot.StartTime)
	}
	return starts
}

func TestGenerateSlotsEmptyWindow(t *testing.T) {
	db := newTestDB(t)
	generator := NewSlotGenerator(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	slots, err := generator.GenerateSlots(physician.ID, date, 30)
	require.NoError(t, err)
	assert.Empty(t, slots, "no availability means no slots, not an error")

	_, err = generator.GenerateSlots("does-not-exist", date, 30)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateSlotsMorningWindow(t *testing.T) {
	db := newTestDB(t)
	generator := NewSlotGenerator(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))
	fixtures.NewRoom(db, "C-101")

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	fixtures.RecurringWindow(db, physician, models.MondayBasedWeekday(date), "08:00", "12:00", models.ShiftMorning)

	slots, err := generator.GenerateSlots(physician.ID, date, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	}, slotStarts(slots))
	assert.Equal(t, "12:00", slots[len(slots)-1].EndTime, "last slot ends exactly at the window end")
}

func TestGenerateSlotsSkipsOccupiedIntervals(t *testing.T) {
	db := newTestDB(t)
	generator := NewSlotGenerator(db)
	specialty := fixtures.NewSpecialty(db, true)
	physician := fixtures.NewPhysician(db, specialty)
	patient := fixtures.NewPatient(db)
	room := fixtures.NewRoom(db, "C-101")

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	fixtures.RecurringWindow(db, physician, models.MondayBasedWeekday(date), "08:00", "12:00", models.ShiftMorning)
	fixtures.NewAppointment(db, patient, physician, room, date, "09:00", "09:30", models.StatusConfirmed)

	slots, err := generator.GenerateSlots(physician.ID, date, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"08:00", "08:30", "09:30", "10:00", "10:30", "11:00", "11:30",
	}, slotStarts(slots))
}

func TestGenerateSlotsIgnoresCancelledAppointments(t *testing.T) {
	db := newTestDB(t)
	generator := NewSlotGenerator(db)
	specialty := fixtures.NewSpecialty(db, true)
	physician := fixtures.NewPhysician(db, specialty)
	patient := fixtures.NewPatient(db)
	room := fixtures.NewRoom(db, "C-101")

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	fixtures.RecurringWindow(db, physician, models.MondayBasedWeekday(date), "08:00", "10:00", models.ShiftMorning)
	fixtures.NewAppointment(db, patient, physician, room, date, "08:00", "08:30", models.StatusCancelled)

	slots, err := generator.GenerateSlots(physician.ID, date, 30)
	require.NoError(t, err)
	assert.Contains(t, slotStarts(slots), "08:00", "a cancelled appointment frees its slot")
}

func TestGenerateSlotsDeduplicatesOverlappingWindows(t *testing.T) {
	db := newTestDB(t)
	generator := NewSlotGenerator(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	weekday := models.MondayBasedWeekday(date)
	fixtures.RecurringWindow(db, physician, weekday, "08:00", "10:00", models.ShiftMorning)
	fixtures.SpecialWindow(db, physician, date, "08:00", "10:00", models.ShiftMorning)

	slots, err := generator.GenerateSlots(physician.ID, date, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, slotStarts(slots),
		"each start time appears once even when two windows cover it")
}

func TestGenerateSlotsWindowShorterThanGranularity(t *testing.T) {
	db := newTestDB(t)
	generator := NewSlotGenerator(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	fixtures.RecurringWindow(db, physician, models.MondayBasedWeekday(date), "08:00", "08:20", models.ShiftMorning)

	slots, err := generator.GenerateSlots(physician.ID, date, 30)
	require.NoError(t, err)
	assert.Empty(t, slots, "a partial trailing interval is never offered")
}

func TestGenerateSlotsWrapWindowStaysOnOwnDay(t *testing.T) {
	db := newTestDB(t)
	generator := NewSlotGenerator(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	weekday := models.MondayBasedWeekday(date)
	fixtures.RecurringWindow(db, physician, weekday, "22:00", "02:00", models.ShiftNight)

	slots, err := generator.GenerateSlots(physician.ID, date, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"00:00", "01:00", "22:00", "23:00"}, slotStarts(slots),
		"both halves of a wrap window land on the window's own day")

	nextDay, err := generator.GenerateSlots(physician.ID, date.AddDate(0, 0, 1), 60)
	require.NoError(t, err)
	assert.Empty(t, nextDay, "a wrap window never bleeds into the next day")
}

func TestGenerateSlotsCustomGranularity(t *testing.T) {
	db := newTestDB(t)
	generator := NewSlotGenerator(db)
	physician := fixtures.NewPhysician(db, fixtures.NewSpecialty(db, true))

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	fixtures.RecurringWindow(db, physician, models.MondayBasedWeekday(date), "08:00", "09:00", models.ShiftMorning)

	slots, err := generator.GenerateSlots(physician.ID, date, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:20", "08:40"}, slotStarts(slots))

	slots, err = generator.GenerateSlots(physician.ID, date, 0)
	require.NoError(t, err)
	assert.Len(t, slots, 2, "non-positive granularity falls back to the default")
}
