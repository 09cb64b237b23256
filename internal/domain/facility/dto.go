package facility

import (
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/validator"
)

type CreateFacilityRequest struct {
	AccountID       string   `json:"account_id"`
	Name            string   `json:"name"`
	AddressLine     string   `json:"address_line"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	PostalCode      string   `json:"postal_code"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	GeofenceRadiusM *float64 `json:"geofence_radius_m"`
	Timezone        *string  `json:"timezone"`
	SquareFootage   *int     `json:"square_footage"`
	Notes           *string  `json:"notes"`
}

func (r *CreateFacilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AccountID) {
		errs = append(errs, validator.ValidationError{
			Field:   "account_id",
			Message: "account_id is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.GeofenceRadiusM != nil && *r.GeofenceRadiusM <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence_radius_m",
			Message: "geofence_radius_m must be positive",
		})
	}

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateFacilityRequest struct {
	ID              string   `json:"-"`
	Name            *string  `json:"name"`
	AddressLine     *string  `json:"address_line"`
	City            *string  `json:"city"`
	State           *string  `json:"state"`
	PostalCode      *string  `json:"postal_code"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	GeofenceRadiusM *float64 `json:"geofence_radius_m"`
	Timezone        *string  `json:"timezone"`
	SquareFootage   *int     `json:"square_footage"`
	Notes           *string  `json:"notes"`
}

func (r *UpdateFacilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "facility id is required",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type FacilityResponse struct {
	ID              string   `json:"id"`
	AccountID       string   `json:"account_id"`
	AccountName     *string  `json:"account_name,omitempty"`
	Name            string   `json:"name"`
	AddressLine     string   `json:"address_line"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	PostalCode      string   `json:"postal_code"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	GeofenceRadiusM *float64 `json:"geofence_radius_m,omitempty"`
	Timezone        *string  `json:"timezone,omitempty"`
	SquareFootage   *int     `json:"square_footage,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type FacilityFilter struct {
	AccountID *string `json:"account_id,omitempty"`
	Search    *string `json:"search,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ListFacilitiesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Facilities []FacilityResponse `json:"facilities"`
}
