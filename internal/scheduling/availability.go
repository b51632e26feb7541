package scheduling

import (
	"time"

	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

// AvailabilityService manages a physician's availability windows and enforces
// the no-overlapping-active-windows invariant.
type AvailabilityService struct {
	DB *gorm.DB
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// WindowInput carries the fields needed to create an availability window.
type WindowInput struct {
	PhysicianID string
	Weekday     *int       // 0=Monday .. 6=Sunday; mutually exclusive with SpecialDate
	SpecialDate *time.Time // one-off date override; mutually exclusive with Weekday
	StartTime   string     // "HH:MM"
	EndTime     string     // "HH:MM"
	Shift       models.ShiftLabel
}

// CreateWindow validates and persists a new availability window. It fails
// with ErrWindowRule if the weekday/special-date rule is violated,
// ErrInvalidTimeRange if the time range is inverted without the night-shift
// wrap exception, and *ScheduleConflictError if the window would overlap an
// existing active window on the same effective day.
func (s *AvailabilityService) CreateWindow(in WindowInput) (*models.AvailabilityWindow, error) {
	if (in.Weekday == nil) == (in.SpecialDate == nil) {
		return nil, ErrWindowRule
	}
	if in.Weekday != nil && (*in.Weekday < 0 || *in.Weekday > 6) {
		return nil, ErrWindowRule
	}

	spans, err := windowSpans(in.StartTime, in.EndTime, in.Shift)
	if err != nil {
		return nil, err
	}

	var physician models.Physician
	if err := s.DB.First(&physician, "id = ?", in.PhysicianID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	window := models.AvailabilityWindow{
		PhysicianID: in.PhysicianID,
		Weekday:     in.Weekday,
		SpecialDate: in.SpecialDate,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Shift:       in.Shift,
		Active:      true,
	}

	if err := s.checkOverlap(&window, spans); err != nil {
		return nil, err
	}

	if err := s.DB.Create(&window).Error; err != nil {
		return nil, err
	}
	return &window, nil
}

// DeactivateWindow soft-deletes a window owned by the given physician.
// Deactivating an already-inactive window is a no-op, not an error.
func (s *AvailabilityService) DeactivateWindow(windowID, physicianID string) error {
	var window models.AvailabilityWindow
	if err := s.DB.First(&window, "id = ? AND physician_id = ?", windowID, physicianID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	if !window.Active {
		return nil
	}
	return s.DB.Model(&window).Update("active", false).Error
}

// ReactivateWindow re-runs the creation overlap check before flipping a
// window back on: a window created while this one was inactive may now
// collide with it.
func (s *AvailabilityService) ReactivateWindow(windowID, physicianID string) error {
	var window models.AvailabilityWindow
	if err := s.DB.First(&window, "id = ? AND physician_id = ?", windowID, physicianID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	if window.Active {
		return nil
	}

	spans, err := windowSpans(window.StartTime, window.EndTime, window.Shift)
	if err != nil {
		return err
	}
	if err := s.checkOverlap(&window, spans); err != nil {
		return err
	}
	return s.DB.Model(&window).Update("active", true).Error
}

// EffectiveWindows returns every active window applying to the given date:
// recurring windows matching the date's weekday plus special-date windows
// for that exact date. Both kinds can coexist on the same date.
func (s *AvailabilityService) EffectiveWindows(physicianID string, date time.Time) ([]models.AvailabilityWindow, error) {
	weekday := models.MondayBasedWeekday(date)
	day := dateOnly(date)

	var windows []models.AvailabilityWindow
	err := s.DB.
		Where("physician_id = ? AND active = ?", physicianID, true).
		Where(s.DB.Where("special_date = ?", day).Or("special_date IS NULL AND weekday = ?", weekday)).
		Order("start_time asc").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

// ListWindows returns all windows for a physician, active ones first.
func (s *AvailabilityService) ListWindows(physicianID string) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := s.DB.
		Where("physician_id = ?", physicianID).
		Order("active desc, weekday asc, special_date asc, start_time asc").
		Find(&windows).Error
	return windows, err
}

// checkOverlap enforces the active-window overlap invariant. Recurring
// windows are checked against other recurring windows on the same weekday;
// special-date windows against other windows for the same date. A recurring
// and a special-date window may cover the same hours: the pair represents an
// extra shift for that date and the slot generator deduplicates them.
func (s *AvailabilityService) checkOverlap(window *models.AvailabilityWindow, spans []Span) error {
	query := s.DB.Where("physician_id = ? AND active = ?", window.PhysicianID, true)
	if window.SpecialDate != nil {
		query = query.Where("special_date = ?", dateOnly(*window.SpecialDate))
	} else {
		query = query.Where("special_date IS NULL AND weekday = ?", *window.Weekday)
	}
	if window.ID != "" {
		query = query.Where("id != ?", window.ID)
	}

	var others []models.AvailabilityWindow
	if err := query.Find(&others).Error; err != nil {
		return err
	}

	for _, other := range others {
		otherSpans, err := windowSpans(other.StartTime, other.EndTime, other.Shift)
		if err != nil {
			return err
		}
		if SpansOverlap(spans, otherSpans) {
			return &ScheduleConflictError{Window: other}
		}
	}
	return nil
}

// windowSpans parses a window's time range and normalizes it into same-day
// spans, applying the night/on-call wrap exception.
func windowSpans(start, end string, shift models.ShiftLabel) ([]Span, error) {
	startClock, err := ParseClock(start)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	endClock, err := ParseClock(end)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	if startClock >= endClock && !shift.AllowsWrap() {
		return nil, ErrInvalidTimeRange
	}
	return SplitWrap(startClock, endClock), nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
