package scheduling

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

// DefaultSlotMinutes is the booking granularity used when the caller does
// not ask for another one.
const DefaultSlotMinutes = 30

// Slot is a bookable candidate interval derived from a physician's effective
// availability minus existing occupancy.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	RoomID    string `json:"roomId,omitempty"`
}

// SlotGenerator computes open slots for a physician and date. It is an
// advisory read: the booking guard re-checks every slot at write time.
type SlotGenerator struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

// NewSlotGenerator creates a new SlotGenerator.
func NewSlotGenerator(db *gorm.DB) *SlotGenerator {
	return &SlotGenerator{DB: db, Availability: NewAvailabilityService(db)}
}

// GenerateSlots walks each effective window for (physician, date) in steps of
// granularityMinutes and returns the sorted, deduplicated candidate slots
// that do not overlap any non-cancelled appointment. A physician with no
// effective windows yields an empty list, not an error.
func (g *SlotGenerator) GenerateSlots(physicianID string, date time.Time, granularityMinutes int) ([]Slot, error) {
	if granularityMinutes <= 0 {
		granularityMinutes = DefaultSlotMinutes
	}

	var physician models.Physician
	if err := g.DB.First(&physician, "id = ?", physicianID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	windows, err := g.Availability.EffectiveWindows(physicianID, date)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return []Slot{}, nil
	}

	occupancy, err := blockingSpans(g.DB, physicianID, date)
	if err != nil {
		return nil, err
	}

	room, err := AssignRoom(g.DB, "")
	if err != nil && err != ErrNotFound {
		return nil, err
	}
	roomID := ""
	if room != nil {
		roomID = room.ID
	}

	seen := make(map[Clock]bool)
	var starts []Clock
	for _, window := range windows {
		spans, err := windowSpans(window.StartTime, window.EndTime, window.Shift)
		if err != nil {
			return nil, err
		}
		for _, span := range spans {
			// Overlapping windows (a recurring rule plus a special-date
			// override for the same hours) may both produce a candidate;
			// emit each start time once.
			for t := span.Start; t.Add(granularityMinutes) <= span.End; t = t.Add(granularityMinutes) {
				candidate := Span{Start: t, End: t.Add(granularityMinutes)}
				if seen[candidate.Start] {
					continue
				}
				if overlapsAny(candidate, occupancy) {
					continue
				}
				seen[candidate.Start] = true
				starts = append(starts, candidate.Start)
			}
		}
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, Slot{
			StartTime: start.String(),
			EndTime:   start.Add(granularityMinutes).String(),
			RoomID:    roomID,
		})
	}
	return slots, nil
}

// blockingSpans loads the occupancy intervals for (physician, date):
// every appointment whose status still blocks the slot.
func blockingSpans(db *gorm.DB, physicianID string, date time.Time) ([]Span, error) {
	appointments, err := blockingAppointments(db, physicianID, date)
	if err != nil {
		return nil, err
	}
	spans := make([]Span, 0, len(appointments))
	for _, appt := range appointments {
		start, err := ParseClock(appt.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := ParseClock(appt.EndTime)
		if err != nil {
			return nil, err
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans, nil
}

func blockingAppointments(db *gorm.DB, physicianID string, date time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.
		Where("physician_id = ? AND date = ?", physicianID, dateOnly(date)).
		Where("status IN ?", []models.AppointmentStatus{
			models.StatusRequested, models.StatusConfirmed, models.StatusAttended,
		}).
		Order("start_time asc").
		Find(&appointments).Error
	return appointments, err
}

func overlapsAny(candidate Span, occupied []Span) bool {
	for _, span := range occupied {
		if candidate.Overlaps(span) {
			return true
		}
	}
	return false
}
