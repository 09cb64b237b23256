package facility

import (
	"context"
)

// FacilityRepository defines data access for facilities
type FacilityRepository interface {
	// Create creates a new facility
	Create(ctx context.Context, facility Facility) (Facility, error)

	// GetByID retrieves a facility by ID
	GetByID(ctx context.Context, id string) (Facility, error)

	// Update updates an existing facility
	Update(ctx context.Context, facility Facility) error

	// Delete removes a facility
	Delete(ctx context.Context, id string) error

	// List retrieves facilities with filters and pagination
	List(ctx context.Context, filter FacilityFilter) ([]Facility, int64, error)
}
