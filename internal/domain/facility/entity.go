package facility

import "time"

// Facility is a serviced location. Its coordinates and geofence radius feed
// the clock-in validator; its timezone is the fallback anchor for contract
// service windows.
type Facility struct {
	ID        string
	AccountID string
	Name      string

	AddressLine string
	City        string
	State       string
	PostalCode  string

	Latitude  float64
	Longitude float64

	// GeofenceRadiusM overrides the configured default when set.
	GeofenceRadiusM *float64

	// Timezone is resolved from the address by the geocoding collaborator
	// when absent; UTC is the final fallback.
	Timezone *string

	SquareFootage *int
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined display fields
	AccountName *string
}
