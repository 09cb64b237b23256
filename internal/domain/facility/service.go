package facility

import (
	"context"
)

// FacilityService defines business logic for facility management
type FacilityService interface {
	CreateFacility(ctx context.Context, req CreateFacilityRequest) (FacilityResponse, error)
	GetFacility(ctx context.Context, id string) (FacilityResponse, error)
	UpdateFacility(ctx context.Context, req UpdateFacilityRequest) (FacilityResponse, error)
	DeleteFacility(ctx context.Context, id string) error
	ListFacilities(ctx context.Context, filter FacilityFilter) (ListFacilitiesResponse, error)
}
