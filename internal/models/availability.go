package models

import "time"

// ShiftLabel classifies an availability window. Night and on-call windows are
// the only ones allowed to wrap past midnight (start > end).
type ShiftLabel string

const (
	ShiftMorning   ShiftLabel = "morning"
	ShiftAfternoon ShiftLabel = "afternoon"
	ShiftNight     ShiftLabel = "night"
	ShiftOnCall    ShiftLabel = "oncall"
)

// AllowsWrap reports whether the shift may span midnight.
func (s ShiftLabel) AllowsWrap() bool {
	return s == ShiftNight || s == ShiftOnCall
}

// AvailabilityWindow represents a bookable time range for one physician:
// either a weekly recurring rule (Weekday set) or a one-off date override
// (SpecialDate set). Exactly one of the two is non-nil. Windows are soft
// deleted by flipping Active off so that historical patterns stay auditable.
type AvailabilityWindow struct {
	BaseModel
	PhysicianID string     `gorm:"size:36;index;not null" json:"physicianId"`
	Weekday     *int       `json:"weekday,omitempty"` // 0=Monday .. 6=Sunday
	SpecialDate *time.Time `gorm:"type:date" json:"specialDate,omitempty"`
	StartTime   string     `gorm:"size:5;not null" json:"startTime"` // "HH:MM"
	EndTime     string     `gorm:"size:5;not null" json:"endTime"`   // "HH:MM"
	Shift       ShiftLabel `gorm:"size:10;not null" json:"shift"`
	Active      bool       `gorm:"default:true" json:"active"`

	Physician Physician `gorm:"foreignKey:PhysicianID" json:"-"`
}

// IsRecurring reports whether the window is a weekly rule rather than a
// date-specific override.
func (w *AvailabilityWindow) IsRecurring() bool {
	return w.Weekday != nil
}

// AppliesTo reports whether the window is effective on the given calendar
// date, assuming the window is active.
func (w *AvailabilityWindow) AppliesTo(date time.Time) bool {
	if w.SpecialDate != nil {
		return sameDate(*w.SpecialDate, date)
	}
	if w.Weekday != nil {
		return *w.Weekday == MondayBasedWeekday(date)
	}
	return false
}

// MondayBasedWeekday maps time.Weekday (Sunday=0) onto the 0=Monday..6=Sunday
// convention the availability rules use.
func MondayBasedWeekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
