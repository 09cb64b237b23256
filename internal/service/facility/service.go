package facility

import (
	"context"
	"fmt"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/account"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/facility"
	"github.com/google/uuid"
)

type FacilityServiceImpl struct {
	facilityRepo facility.FacilityRepository
	accountRepo  account.AccountRepository
	now          func() time.Time
}

func NewFacilityService(facilityRepo facility.FacilityRepository, accountRepo account.AccountRepository) facility.FacilityService {
	return &FacilityServiceImpl{
		facilityRepo: facilityRepo,
		accountRepo:  accountRepo,
		now:          time.Now,
	}
}

// CreateFacility implements facility.FacilityService.
func (s *FacilityServiceImpl) CreateFacility(ctx context.Context, req facility.CreateFacilityRequest) (facility.FacilityResponse, error) {
	if err := req.Validate(); err != nil {
		return facility.FacilityResponse{}, err
	}

	// A facility must hang off an existing account.
	if _, err := s.accountRepo.GetByID(ctx, req.AccountID); err != nil {
		return facility.FacilityResponse{}, err
	}

	now := s.now()
	f := facility.Facility{
		ID:              uuid.NewString(),
		AccountID:       req.AccountID,
		Name:            req.Name,
		AddressLine:     req.AddressLine,
		City:            req.City,
		State:           req.State,
		PostalCode:      req.PostalCode,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		GeofenceRadiusM: req.GeofenceRadiusM,
		Timezone:        req.Timezone,
		SquareFootage:   req.SquareFootage,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.facilityRepo.Create(ctx, f)
	if err != nil {
		return facility.FacilityResponse{}, fmt.Errorf("failed to create facility: %w", err)
	}

	return toFacilityResponse(created), nil
}

// GetFacility implements facility.FacilityService.
func (s *FacilityServiceImpl) GetFacility(ctx context.Context, id string) (facility.FacilityResponse, error) {
	f, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		return facility.FacilityResponse{}, err
	}
	return toFacilityResponse(f), nil
}

// UpdateFacility implements facility.FacilityService. Only fields present in
// the request change.
func (s *FacilityServiceImpl) UpdateFacility(ctx context.Context, req facility.UpdateFacilityRequest) (facility.FacilityResponse, error) {
	if err := req.Validate(); err != nil {
		return facility.FacilityResponse{}, err
	}

	f, err := s.facilityRepo.GetByID(ctx, req.ID)
	if err != nil {
		return facility.FacilityResponse{}, err
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.AddressLine != nil {
		f.AddressLine = *req.AddressLine
	}
	if req.City != nil {
		f.City = *req.City
	}
	if req.State != nil {
		f.State = *req.State
	}
	if req.PostalCode != nil {
		f.PostalCode = *req.PostalCode
	}
	if req.Latitude != nil {
		f.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		f.Longitude = *req.Longitude
	}
	if req.GeofenceRadiusM != nil {
		f.GeofenceRadiusM = req.GeofenceRadiusM
	}
	if req.Timezone != nil {
		f.Timezone = req.Timezone
	}
	if req.SquareFootage != nil {
		f.SquareFootage = req.SquareFootage
	}
	if req.Notes != nil {
		f.Notes = req.Notes
	}
	f.UpdatedAt = s.now()

	if err := s.facilityRepo.Update(ctx, f); err != nil {
		return facility.FacilityResponse{}, fmt.Errorf("failed to update facility: %w", err)
	}

	return toFacilityResponse(f), nil
}

// DeleteFacility implements facility.FacilityService.
func (s *FacilityServiceImpl) DeleteFacility(ctx context.Context, id string) error {
	if _, err := s.facilityRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.facilityRepo.Delete(ctx, id)
}

// ListFacilities implements facility.FacilityService.
func (s *FacilityServiceImpl) ListFacilities(ctx context.Context, filter facility.FacilityFilter) (facility.ListFacilitiesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	facilities, total, err := s.facilityRepo.List(ctx, filter)
	if err != nil {
		return facility.ListFacilitiesResponse{}, fmt.Errorf("failed to list facilities: %w", err)
	}

	responses := make([]facility.FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		responses = append(responses, toFacilityResponse(f))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return facility.ListFacilitiesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Facilities: responses,
	}, nil
}

const timeFormat = "2006-01-02 15:04:05"

func toFacilityResponse(f facility.Facility) facility.FacilityResponse {
	return facility.FacilityResponse{
		ID:              f.ID,
		AccountID:       f.AccountID,
		AccountName:     f.AccountName,
		Name:            f.Name,
		AddressLine:     f.AddressLine,
		City:            f.City,
		State:           f.State,
		PostalCode:      f.PostalCode,
		Latitude:        f.Latitude,
		Longitude:       f.Longitude,
		GeofenceRadiusM: f.GeofenceRadiusM,
		Timezone:        f.Timezone,
		SquareFootage:   f.SquareFootage,
		Notes:           f.Notes,
		CreatedAt:       f.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:       f.UpdatedAt.UTC().Format(timeFormat),
	}
}
