package schedule

import (
	"fmt"
	"time"
)

// ServiceSchedule is the canonical recurrence rule derived from a contract:
// which weekdays service happens, the time-of-day window work is allowed in,
// and the timezone that window is anchored to. It is a derived value, never
// persisted on its own.
type ServiceSchedule struct {
	Days           []time.Weekday
	WindowStartMin int // minutes since midnight, inclusive
	WindowEndMin   int // minutes since midnight, inclusive
	Timezone       string
}

// HasDay reports whether d is a service day.
func (s *ServiceSchedule) HasDay(d time.Weekday) bool {
	for _, day := range s.Days {
		if day == d {
			return true
		}
	}
	return false
}

// Location resolves the schedule timezone, falling back to UTC.
func (s *ServiceSchedule) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WindowOnDate returns the concrete start and end instants of the allowed
// window on the given calendar date, anchored to the schedule timezone.
func (s *ServiceSchedule) WindowOnDate(date time.Time) (time.Time, time.Time) {
	loc := s.Location()
	start := time.Date(date.Year(), date.Month(), date.Day(),
		s.WindowStartMin/60, s.WindowStartMin%60, 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(),
		s.WindowEndMin/60, s.WindowEndMin%60, 0, 0, loc)
	return start, end
}

// InWindow reports whether the instant t falls inside the allowed window on
// its own calendar date in the schedule timezone.
func (s *ServiceSchedule) InWindow(t time.Time) bool {
	local := t.In(s.Location())
	minuteOfDay := local.Hour()*60 + local.Minute()
	return minuteOfDay >= s.WindowStartMin && minuteOfDay <= s.WindowEndMin
}

// WindowString formats the window bounds for error details, e.g. "09:00-17:00".
func (s *ServiceSchedule) WindowString() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		s.WindowStartMin/60, s.WindowStartMin%60,
		s.WindowEndMin/60, s.WindowEndMin%60)
}
