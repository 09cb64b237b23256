package timeentry

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusEdited    Status = "edited"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var StatusValues = []string{
	string(StatusActive),
	string(StatusCompleted),
	string(StatusEdited),
	string(StatusApproved),
	string(StatusRejected),
}

// GeoLocation is a validated capture of where a clock event happened. It is
// modeled as a concrete struct rather than a free-form metadata blob; the
// boundary rejects captures missing coordinates.
type GeoLocation struct {
	Latitude   float64
	Longitude  float64
	AccuracyM  *float64
	CapturedAt time.Time
	Source     string // "gps", "network", "manual"
}

// TimeEntry is one clock-in/clock-out session for a user, optionally linked
// to a job and facility. At most one entry per user may be active, enforced
// both here and by a partial unique index in the store.
type TimeEntry struct {
	ID         string
	UserID     string
	JobID      *string
	FacilityID *string

	ClockIn  time.Time
	ClockOut *time.Time
	Status   Status

	ClockInLocation  *GeoLocation
	ClockOutLocation *GeoLocation
	BreakStartedAt   *time.Time

	// Manager override audit trail for geofence/window bypasses.
	OverrideReason *string
	OverrideBy     *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined display fields
	UserName     *string
	FacilityName *string
	JobNumber    *string
}

// DurationMinutes returns the closed session length, or minutes elapsed so
// far for an active entry relative to now.
func (e *TimeEntry) DurationMinutes(now time.Time) int {
	end := now
	if e.ClockOut != nil {
		end = *e.ClockOut
	}
	return int(end.Sub(e.ClockIn).Minutes())
}
