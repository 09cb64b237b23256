package timeentry

import (
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/validator"
)

// Actor identifies the authenticated caller. IsManager is resolved from the
// JWT role claim at the HTTP layer; the validator trusts it and only checks
// that an asserted override carries a reason.
type Actor struct {
	UserID    string
	IsManager bool
}

// GeoLocationInput is the client-supplied location capture. A nil input on
// clock-in is rejected outright; override only bypasses geofence validity,
// never the presence of location data.
type GeoLocationInput struct {
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	AccuracyM  *float64 `json:"accuracy_m,omitempty"`
	CapturedAt string   `json:"captured_at"` // RFC3339
	Source     string   `json:"source"`      // gps, network, manual
}

var geoSources = []string{"gps", "network", "manual"}

func (g *GeoLocationInput) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if !validator.IsValidLatitude(g.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "geo_location.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(g.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "geo_location.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if g.Source != "" && !validator.IsInSlice(g.Source, geoSources) {
		errs = append(errs, validator.ValidationError{
			Field:   "geo_location.source",
			Message: "source must be one of gps, network, manual",
		})
	}
	if g.CapturedAt != "" {
		if _, ok := validator.IsValidDateTime(g.CapturedAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "geo_location.captured_at",
				Message: "captured_at must be an RFC3339 timestamp",
			})
		}
	}
	return errs
}

// ToGeoLocation converts the boundary shape into the domain value, defaulting
// the capture time to now when the client omitted it.
func (g *GeoLocationInput) ToGeoLocation(now time.Time) *GeoLocation {
	capturedAt := now
	if g.CapturedAt != "" {
		if t, ok := validator.IsValidDateTime(g.CapturedAt); ok {
			capturedAt = t
		}
	}
	source := g.Source
	if source == "" {
		source = "gps"
	}
	return &GeoLocation{
		Latitude:   g.Latitude,
		Longitude:  g.Longitude,
		AccuracyM:  g.AccuracyM,
		CapturedAt: capturedAt,
		Source:     source,
	}
}

type ClockInRequest struct {
	Actor           Actor             `json:"-"`
	JobID           *string           `json:"job_id"`
	FacilityID      *string           `json:"facility_id"`
	GeoLocation     *GeoLocationInput `json:"geo_location"`
	ManagerOverride bool              `json:"manager_override"`
	OverrideReason  string            `json:"override_reason"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Actor.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	// Location presence and override-reason rules surface as their own
	// sentinels from the service; this only checks field shapes.
	if r.GeoLocation != nil {
		errs = r.GeoLocation.validate(errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	Actor       Actor             `json:"-"`
	GeoLocation *GeoLocationInput `json:"geo_location"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Actor.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.GeoLocation != nil {
		errs = r.GeoLocation.validate(errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeEntryResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	UserName        *string  `json:"user_name,omitempty"`
	JobID           *string  `json:"job_id,omitempty"`
	JobNumber       *string  `json:"job_number,omitempty"`
	FacilityID      *string  `json:"facility_id,omitempty"`
	FacilityName    *string  `json:"facility_name,omitempty"`
	ClockIn         string   `json:"clock_in"`
	ClockOut        *string  `json:"clock_out,omitempty"`
	Status          string   `json:"status"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	OverrideReason  *string  `json:"override_reason,omitempty"`
	OverrideBy      *string  `json:"override_by,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// ToTimeEntryResponse converts a TimeEntry entity to its API shape. Duration
// for open entries is computed against now.
func ToTimeEntryResponse(e TimeEntry, now time.Time) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		UserName:       e.UserName,
		JobID:          e.JobID,
		JobNumber:      e.JobNumber,
		FacilityID:     e.FacilityID,
		FacilityName:   e.FacilityName,
		ClockIn:        e.ClockIn.UTC().Format(timeFormat),
		ClockOut:       formatTimePtr(e.ClockOut),
		Status:         string(e.Status),
		OverrideReason: e.OverrideReason,
		OverrideBy:     e.OverrideBy,
		CreatedAt:      e.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:      e.UpdatedAt.UTC().Format(timeFormat),
	}

	minutes := e.DurationMinutes(now)
	resp.DurationMinutes = &minutes

	if e.ClockInLocation != nil {
		resp.Latitude = &e.ClockInLocation.Latitude
		resp.Longitude = &e.ClockInLocation.Longitude
	}

	return resp
}

const timeFormat = "2006-01-02 15:04:05"

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(timeFormat)
	return &formatted
}

// ClockOutResponse wraps the closed entry. JobStillInProgress signals the
// linked job has not been completed; completing it is a separate workflow the
// client is expected to drive, not something the clock enforces.
type ClockOutResponse struct {
	Entry              TimeEntryResponse `json:"entry"`
	JobStillInProgress bool              `json:"job_still_in_progress"`
}

type TimeEntryFilter struct {
	UserID     *string `json:"user_id,omitempty"`
	JobID      *string `json:"job_id,omitempty"`
	FacilityID *string `json:"facility_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // clock_in, clock_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *TimeEntryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of active, completed, edited, approved, rejected",
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListTimeEntriesResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Entries    []TimeEntryResponse `json:"entries"`
}
