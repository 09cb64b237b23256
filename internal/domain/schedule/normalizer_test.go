package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNormalizeExplicitDays(t *testing.T) {
	n := NewNormalizer(nil, time.Monday)

	raw := &RawSchedule{
		Days:           []int{1, 4}, // Monday, Thursday
		WindowStartMin: intPtr(9 * 60),
		WindowEndMin:   intPtr(17 * 60),
		Timezone:       "America/Chicago",
	}

	s, err := n.Normalize(raw, "weekly", "America/New_York")
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday}, s.Days)
	assert.Equal(t, 9*60, s.WindowStartMin)
	assert.Equal(t, 17*60, s.WindowEndMin)
	// Explicit schedule timezone wins over the facility's.
	assert.Equal(t, "America/Chicago", s.Timezone)
}

func TestNormalizeFrequencyFallback(t *testing.T) {
	n := NewNormalizer(map[string]time.Weekday{"weekly": time.Wednesday}, time.Monday)

	s, err := n.Normalize(nil, "weekly", "")
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, []time.Weekday{time.Wednesday}, s.Days)
	assert.Equal(t, DefaultWindowStartMin, s.WindowStartMin)
	assert.Equal(t, DefaultWindowEndMin, s.WindowEndMin)
	assert.Equal(t, "UTC", s.Timezone)
}

func TestNormalizeUnknownFrequencyUsesDefaultDay(t *testing.T) {
	n := NewNormalizer(DefaultFrequencyDays(), time.Monday)

	s, err := n.Normalize(nil, "quarterly", "")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, []time.Weekday{time.Monday}, s.Days)
}

func TestNormalizeNoRecurrence(t *testing.T) {
	n := NewNormalizer(nil, time.Monday)

	s, err := n.Normalize(nil, "", "")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = n.Normalize(&RawSchedule{}, "", "America/New_York")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestNormalizeInvalidWindow(t *testing.T) {
	n := NewNormalizer(nil, time.Monday)

	// end (05:00) before start (09:00)
	raw := &RawSchedule{
		Days:           []int{1},
		WindowStartMin: intPtr(540),
		WindowEndMin:   intPtr(300),
	}
	_, err := n.Normalize(raw, "", "")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	// zero-length window is also invalid
	raw.WindowEndMin = intPtr(540)
	_, err = n.Normalize(raw, "", "")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestNormalizeInvalidDay(t *testing.T) {
	n := NewNormalizer(nil, time.Monday)

	_, err := n.Normalize(&RawSchedule{Days: []int{0}}, "", "")
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = n.Normalize(&RawSchedule{Days: []int{8}}, "", "")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestNormalizeTimezoneFallbackOrder(t *testing.T) {
	n := NewNormalizer(nil, time.Monday)

	// Facility timezone used when schedule has none.
	s, err := n.Normalize(&RawSchedule{Days: []int{2}}, "", "Asia/Jakarta")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", s.Timezone)

	// Malformed schedule timezone falls back to the facility's.
	s, err = n.Normalize(&RawSchedule{Days: []int{2}, Timezone: "Not/AZone"}, "", "Asia/Jakarta")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", s.Timezone)

	// Everything malformed or missing lands on UTC.
	s, err = n.Normalize(&RawSchedule{Days: []int{2}, Timezone: "Not/AZone"}, "", "Also/Bogus")
	require.NoError(t, err)
	assert.Equal(t, "UTC", s.Timezone)
}

func TestNormalizeSundayMapping(t *testing.T) {
	n := NewNormalizer(nil, time.Monday)

	s, err := n.Normalize(&RawSchedule{Days: []int{7}}, "", "")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Sunday}, s.Days)
}

func TestInWindow(t *testing.T) {
	s := &ServiceSchedule{
		Days:           []time.Weekday{time.Monday},
		WindowStartMin: 9 * 60,
		WindowEndMin:   17 * 60,
		Timezone:       "America/New_York",
	}

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	assert.True(t, s.InWindow(time.Date(2026, 3, 2, 9, 0, 0, 0, loc)))
	assert.True(t, s.InWindow(time.Date(2026, 3, 2, 17, 0, 0, 0, loc)))
	assert.False(t, s.InWindow(time.Date(2026, 3, 2, 8, 59, 0, 0, loc)))
	assert.False(t, s.InWindow(time.Date(2026, 3, 2, 17, 1, 0, 0, loc)))

	// A UTC instant is evaluated in the schedule's zone, not its own.
	utcNoon := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) // 07:00 in New York
	assert.False(t, s.InWindow(utcNoon))
}

func TestWindowOnDate(t *testing.T) {
	s := &ServiceSchedule{
		Days:           []time.Weekday{time.Monday},
		WindowStartMin: 8*60 + 30,
		WindowEndMin:   16 * 60,
		Timezone:       "UTC",
	}

	start, end := s.WindowOnDate(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "08:30-16:00", s.WindowString())
}
