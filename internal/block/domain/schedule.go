package domain

import (
	"fmt"
	"strings"
	"time"
)

// Day bits for Schedule.Days, Sunday through Saturday.
// Bit positions follow time.Weekday so conversion is a single shift.
const (
	Sunday    uint8 = 1 << 0
	Monday    uint8 = 1 << 1
	Tuesday   uint8 = 1 << 2
	Wednesday uint8 = 1 << 3
	Thursday  uint8 = 1 << 4
	Friday    uint8 = 1 << 5
	Saturday  uint8 = 1 << 6
)

// dayNames in bit order, used for the human-readable window projection.
var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// minutesPerDay bounds TimeOfDay values.
const minutesPerDay = 24 * 60

// TimeOfDay is minutes since local midnight, in [0, 1440).
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" clock string into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day out of range: %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// String renders the time of day as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// IsValid reports whether the value is within a single day.
func (t TimeOfDay) IsValid() bool { return t >= 0 && t < minutesPerDay }

// Schedule is a recurring weekly blocking window. End < Start means the
// window crosses midnight into the following day; day membership is tested
// against the day the window starts on.
type Schedule struct {
	ID    string
	Name  string
	Days  uint8
	Start TimeOfDay
	End   TimeOfDay
}

// NewSchedule constructs a Schedule and validates its fields.
func NewSchedule(id, name string, days uint8, start, end TimeOfDay) (Schedule, error) {
	s := Schedule{
		ID:    strings.TrimSpace(id),
		Name:  strings.TrimSpace(name),
		Days:  days,
		Start: start,
		End:   end,
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Validate checks the Schedule for required fields and supported values.
func (s Schedule) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("schedule id must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("schedule name must not be empty")
	}
	if s.Days == 0 || s.Days > Sunday|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday {
		return fmt.Errorf("schedule days must select at least one weekday")
	}
	if !s.Start.IsValid() || !s.End.IsValid() {
		return fmt.Errorf("schedule times must be within a single day")
	}
	if s.Start == s.End {
		return fmt.Errorf("schedule window must not be empty")
	}
	return nil
}

// onDay reports whether the schedule includes the given weekday.
func (s Schedule) onDay(d time.Weekday) bool {
	return s.Days&(1<<uint8(d)) != 0
}

// wraps reports whether the window crosses midnight.
func (s Schedule) wraps() bool { return s.End < s.Start }

// ActiveAt reports whether the window is active at the given instant.
// Membership is [Start, End). For a wrapped window the early-morning segment
// belongs to the previous day's membership: a Monday 23:00-01:00 schedule is
// active Tuesday 00:30 but not Tuesday 02:00.
func (s Schedule) ActiveAt(now time.Time) bool {
	tod := TimeOfDay(now.Hour()*60 + now.Minute())
	if !s.wraps() {
		return s.onDay(now.Weekday()) && tod >= s.Start && tod < s.End
	}
	if s.onDay(now.Weekday()) && tod >= s.Start {
		return true
	}
	prev := (now.Weekday() + 6) % 7
	return s.onDay(prev) && tod < s.End
}

// Remaining returns the duration until the active window closes.
// The second return is false when the schedule is not active at now.
func (s Schedule) Remaining(now time.Time) (time.Duration, bool) {
	if !s.ActiveAt(now) {
		return 0, false
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), int(s.End)/60, int(s.End)%60, 0, 0, now.Location())
	if s.wraps() {
		tod := TimeOfDay(now.Hour()*60 + now.Minute())
		if tod >= s.Start {
			end = end.AddDate(0, 0, 1)
		}
	}
	return end.Sub(now), true
}

// Window renders the schedule as a human-readable projection, e.g.
// "Mon, Tue 23:00-01:00". Display only; not a parseable format.
func (s Schedule) Window() string {
	var days []string
	for i, name := range dayNames {
		if s.Days&(1<<uint8(i)) != 0 {
			days = append(days, name)
		}
	}
	return fmt.Sprintf("%s %s-%s", strings.Join(days, ", "), s.Start, s.End)
}
