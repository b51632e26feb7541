package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day expressed in minutes since midnight. Appointment
// and availability times are stored as "HH:MM" strings; all interval
// arithmetic happens on this type.
type Clock int

// MinutesPerDay is the exclusive upper bound of a Clock within one day.
const MinutesPerDay = 24 * 60

// ParseClock parses a "HH:MM" string into a Clock.
func ParseClock(s string) (Clock, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in clock time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in clock time %q", s)
	}
	return Clock(h*60 + m), nil
}

// String renders the clock back as "HH:MM". MinutesPerDay renders as "24:00"
// so a span ending at midnight stays printable.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add returns the clock advanced by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// Span is a half-open [Start, End) interval within a single day. Spans never
// wrap midnight; wrap-around windows are split into spans first.
type Span struct {
	Start Clock
	End   Clock
}

// Overlaps is the single overlap predicate used everywhere in the system:
// two half-open intervals overlap iff each one starts before the other ends.
// Window-overlap checks and appointment-conflict checks must both go through
// this method so the read side and the write side can never disagree.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Contains reports whether the span fully contains o.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Minutes returns the span length in minutes.
func (s Span) Minutes() int {
	return int(s.End - s.Start)
}

// SplitWrap normalizes a window's time range into same-day spans. A regular
// range (start < end) yields itself. A wrap-around range (start >= end,
// permitted only for night/on-call shifts) yields [start, 24:00) plus
// [00:00, end). Both halves belong to the window's own effective day: a
// wrap window never bleeds into the next calendar day's schedule.
func SplitWrap(start, end Clock) []Span {
	if start < end {
		return []Span{{Start: start, End: end}}
	}
	spans := []Span{{Start: start, End: MinutesPerDay}}
	if end > 0 {
		spans = append(spans, Span{Start: 0, End: end})
	}
	return spans
}

// SpansOverlap reports whether any span in a overlaps any span in b.
func SpansOverlap(a, b []Span) bool {
	for _, sa := range a {
		for _, sb := range b {
			if sa.Overlaps(sb) {
				return true
			}
		}
	}
	return false
}
