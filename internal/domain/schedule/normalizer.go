package schedule

import (
	"time"
)

// RawSchedule is the schedule shape as stored on a contract: possibly absent,
// possibly partial. Days use ISO numbering, 1=Monday through 7=Sunday.
type RawSchedule struct {
	Days           []int
	WindowStartMin *int
	WindowEndMin   *int
	Timezone       string
}

// Default permissive window used when a contract carries no explicit one.
const (
	DefaultWindowStartMin = 0
	DefaultWindowEndMin   = 23*60 + 59
)

// Normalizer turns a raw contract schedule plus a frequency label into a
// canonical ServiceSchedule. The frequency-to-weekday policy is injected so
// callers (and tests) can vary it; it is a scheduling convenience, not a
// correctness rule.
type Normalizer struct {
	frequencyDays map[string]time.Weekday
	defaultDay    time.Weekday
}

// DefaultFrequencyDays maps the frequency labels sales uses on contracts to
// a representative weekday for generation when no explicit days are set.
func DefaultFrequencyDays() map[string]time.Weekday {
	return map[string]time.Weekday{
		"weekly":   time.Monday,
		"biweekly": time.Monday,
		"monthly":  time.Monday,
	}
}

func NewNormalizer(frequencyDays map[string]time.Weekday, defaultDay time.Weekday) *Normalizer {
	if frequencyDays == nil {
		frequencyDays = DefaultFrequencyDays()
	}
	return &Normalizer{
		frequencyDays: frequencyDays,
		defaultDay:    defaultDay,
	}
}

// Normalize produces a fully populated ServiceSchedule, or nil when no
// recurrence can be determined from the inputs. It returns an error only for
// an explicitly invalid window; missing or unknown data degrades to defaults.
//
// Timezone resolution order: raw schedule field, then facility timezone,
// then UTC. A malformed zone name falls through to the next candidate.
func (n *Normalizer) Normalize(raw *RawSchedule, frequency string, facilityTZ string) (*ServiceSchedule, error) {
	days, err := n.resolveDays(raw, frequency)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}

	startMin := DefaultWindowStartMin
	endMin := DefaultWindowEndMin
	if raw != nil && raw.WindowStartMin != nil && raw.WindowEndMin != nil {
		startMin = *raw.WindowStartMin
		endMin = *raw.WindowEndMin
	}
	if startMin < 0 || endMin > 23*60+59 || endMin <= startMin {
		return nil, ErrInvalidWindow
	}

	tz := "UTC"
	if facilityTZ != "" && loadable(facilityTZ) {
		tz = facilityTZ
	}
	if raw != nil && raw.Timezone != "" && loadable(raw.Timezone) {
		tz = raw.Timezone
	}

	return &ServiceSchedule{
		Days:           days,
		WindowStartMin: startMin,
		WindowEndMin:   endMin,
		Timezone:       tz,
	}, nil
}

func (n *Normalizer) resolveDays(raw *RawSchedule, frequency string) ([]time.Weekday, error) {
	if raw != nil && len(raw.Days) > 0 {
		days := make([]time.Weekday, 0, len(raw.Days))
		seen := make(map[int]bool)
		for _, d := range raw.Days {
			if d < 1 || d > 7 {
				return nil, ErrInvalidDay
			}
			if seen[d] {
				continue
			}
			seen[d] = true
			days = append(days, isoToWeekday(d))
		}
		return days, nil
	}

	if frequency == "" {
		return nil, nil
	}
	day, ok := n.frequencyDays[frequency]
	if !ok {
		day = n.defaultDay
	}
	return []time.Weekday{day}, nil
}

// isoToWeekday converts ISO day numbering (1=Monday..7=Sunday) to time.Weekday.
func isoToWeekday(iso int) time.Weekday {
	if iso == 7 {
		return time.Sunday
	}
	return time.Weekday(iso)
}

func loadable(tz string) bool {
	_, err := time.LoadLocation(tz)
	return err == nil
}
