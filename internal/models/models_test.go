package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMondayBasedWeekday(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())

	for offset := 0; offset < 7; offset++ {
		assert.Equal(t, offset, MondayBasedWeekday(monday.AddDate(0, 0, offset)))
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range ValidRoles {
		assert.True(t, role.IsValid(), role)
	}
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestReferralUsableOn(t *testing.T) {
	issued := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	referral := Referral{IssuedOn: issued, ValidityDays: 30, Status: ReferralPending}

	assert.True(t, referral.UsableOn(issued), "usable on the day it is issued")
	assert.True(t, referral.UsableOn(issued.AddDate(0, 0, 30)), "usable on the last validity day")
	assert.False(t, referral.UsableOn(issued.AddDate(0, 0, 31)), "expired the day after")

	referral.Status = ReferralUsed
	assert.False(t, referral.UsableOn(issued), "a used referral authorizes nothing")
}

func TestAppointmentStatusFlags(t *testing.T) {
	assert.True(t, StatusRequested.BlocksSlot())
	assert.True(t, StatusConfirmed.BlocksSlot())
	assert.True(t, StatusAttended.BlocksSlot())
	assert.False(t, StatusCancelled.BlocksSlot())

	assert.True(t, StatusAttended.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusRequested.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}

func TestShiftAllowsWrap(t *testing.T) {
	assert.False(t, ShiftMorning.AllowsWrap())
	assert.False(t, ShiftAfternoon.AllowsWrap())
	assert.True(t, ShiftNight.AllowsWrap())
	assert.True(t, ShiftOnCall.AllowsWrap())
}

func TestAvailabilityWindowAppliesTo(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	weekday := MondayBasedWeekday(monday)

	recurring := AvailabilityWindow{Weekday: &weekday, Active: true}
	assert.True(t, recurring.IsRecurring())
	assert.True(t, recurring.AppliesTo(monday))
	assert.True(t, recurring.AppliesTo(monday.AddDate(0, 0, 7)))
	assert.False(t, recurring.AppliesTo(monday.AddDate(0, 0, 1)))

	special := AvailabilityWindow{SpecialDate: &monday, Active: true}
	assert.False(t, special.IsRecurring())
	assert.True(t, special.AppliesTo(monday))
	assert.False(t, special.AppliesTo(monday.AddDate(0, 0, 7)))
}

func TestUserPasswordHashing(t *testing.T) {
	var user User
	require.NoError(t, user.SetPassword("s3cret-pass"))
	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong"))
}
