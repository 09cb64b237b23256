package timeentry

import (
	"errors"
	"fmt"
)

// Time clock domain errors
var (
	// Clock-in errors
	ErrActiveEntryExists       = errors.New("user already has an active time entry")
	ErrClockInLocationRequired = errors.New("clock-in location data is required")
	ErrOutsideFacilityGeofence = errors.New("clock-in location is outside the facility geofence")

	// Clock-out errors
	ErrNoActiveEntry    = errors.New("user has no active time entry")
	ErrClockOutTooEarly = errors.New("clock-out must be after clock-in")

	// General errors
	ErrEntryNotFound = errors.New("time entry not found")
)

// OutsideGeofenceError carries the measured distance and allowed radius so
// the client can render the override confirmation prompt.
type OutsideGeofenceError struct {
	DistanceM float64
	RadiusM   float64
}

func (e *OutsideGeofenceError) Error() string {
	return fmt.Sprintf("clock-in location is %.0fm from the facility, allowed radius is %.0fm", e.DistanceM, e.RadiusM)
}

func (e *OutsideGeofenceError) Is(target error) bool {
	return target == ErrOutsideFacilityGeofence
}
