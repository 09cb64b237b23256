package timeclock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/contract"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/facility"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/schedule"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/timeentry"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/geo"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type TimeClockServiceImpl struct {
	entryRepo    timeentry.TimeEntryRepository
	jobRepo      job.JobRepository
	facilityRepo facility.FacilityRepository
	contractRepo contract.ContractRepository
	normalizer   *schedule.Normalizer

	// defaultRadiusM applies when the facility carries no radius of its own.
	defaultRadiusM float64
	now            func() time.Time
}

func NewTimeClockService(
	entryRepo timeentry.TimeEntryRepository,
	jobRepo job.JobRepository,
	facilityRepo facility.FacilityRepository,
	contractRepo contract.ContractRepository,
	normalizer *schedule.Normalizer,
	defaultRadiusM float64,
) timeentry.TimeClockService {
	return &TimeClockServiceImpl{
		entryRepo:      entryRepo,
		jobRepo:        jobRepo,
		facilityRepo:   facilityRepo,
		contractRepo:   contractRepo,
		normalizer:     normalizer,
		defaultRadiusM: defaultRadiusM,
		now:            time.Now,
	}
}

// ClockIn implements timeentry.TimeClockService. Validation order matters:
// location presence and request shape first, then the single-active-entry
// rule, then geofence, then service window. Manager override bypasses the
// geofence and window checks only; it never excuses missing location data or
// a second active entry.
func (s *TimeClockServiceImpl) ClockIn(ctx context.Context, req timeentry.ClockInRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	// Location presence is a hard requirement with no override path; only
	// the validity of a supplied location can be overridden.
	if req.GeoLocation == nil {
		return timeentry.TimeEntryResponse{}, timeentry.ErrClockInLocationRequired
	}

	// An asserted override always needs a reason, violation or not.
	if req.ManagerOverride && validator.IsEmpty(req.OverrideReason) {
		return timeentry.TimeEntryResponse{}, job.ErrOverrideReasonRequired
	}

	active, err := s.entryRepo.GetActiveByUser(ctx, req.Actor.UserID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to check active entry: %w", err)
	}
	if active != nil {
		return timeentry.TimeEntryResponse{}, timeentry.ErrActiveEntryExists
	}

	now := s.now()

	linkedJob, fac, err := s.resolveContext(ctx, req.JobID, req.FacilityID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	overridden := false
	if err := s.validatePlacement(ctx, req.GeoLocation, linkedJob, fac, now); err != nil {
		// Only geofence and window violations are overridable; lookup and
		// normalization failures are not.
		overridable := errors.Is(err, timeentry.ErrOutsideFacilityGeofence) ||
			errors.Is(err, schedule.ErrOutsideServiceWindow)
		if !overridable || !req.ManagerOverride {
			return timeentry.TimeEntryResponse{}, err
		}
		if !req.Actor.IsManager {
			return timeentry.TimeEntryResponse{}, job.ErrOverrideNotAllowed
		}
		overridden = true
	}

	entry := timeentry.TimeEntry{
		ID:              uuid.NewString(),
		UserID:          req.Actor.UserID,
		JobID:           req.JobID,
		FacilityID:      req.FacilityID,
		ClockIn:         now,
		Status:          timeentry.StatusActive,
		ClockInLocation: req.GeoLocation.ToGeoLocation(now),
	}
	if fac != nil && entry.FacilityID == nil {
		entry.FacilityID = &fac.ID
	}
	if overridden {
		entry.OverrideReason = &req.OverrideReason
		entry.OverrideBy = &req.Actor.UserID
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		// The partial unique index catches the race two concurrent clock-ins
		// would win against the pre-check above.
		return timeentry.TimeEntryResponse{}, err
	}

	return timeentry.ToTimeEntryResponse(created, now), nil
}

// ClockOut implements timeentry.TimeClockService.
func (s *TimeClockServiceImpl) ClockOut(ctx context.Context, req timeentry.ClockOutRequest) (timeentry.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.ClockOutResponse{}, err
	}

	active, err := s.entryRepo.GetActiveByUser(ctx, req.Actor.UserID)
	if err != nil {
		return timeentry.ClockOutResponse{}, fmt.Errorf("failed to load active entry: %w", err)
	}
	if active == nil {
		return timeentry.ClockOutResponse{}, timeentry.ErrNoActiveEntry
	}

	now := s.now()
	if !now.After(active.ClockIn) {
		return timeentry.ClockOutResponse{}, timeentry.ErrClockOutTooEarly
	}

	entry := *active
	entry.ClockOut = &now
	entry.Status = timeentry.StatusCompleted
	if req.GeoLocation != nil {
		entry.ClockOutLocation = req.GeoLocation.ToGeoLocation(now)
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return timeentry.ClockOutResponse{}, fmt.Errorf("failed to close entry: %w", err)
	}

	resp := timeentry.ClockOutResponse{
		Entry: timeentry.ToTimeEntryResponse(entry, now),
	}

	// Flag an unfinished linked job; the clock never mutates job state.
	if entry.JobID != nil {
		if j, jerr := s.jobRepo.GetByID(ctx, *entry.JobID); jerr == nil {
			resp.JobStillInProgress = j.Status == job.StatusInProgress
		}
	}

	return resp, nil
}

// GetActiveEntry implements timeentry.TimeClockService.
func (s *TimeClockServiceImpl) GetActiveEntry(ctx context.Context, userID string) (*timeentry.TimeEntryResponse, error) {
	active, err := s.entryRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active entry: %w", err)
	}
	if active == nil {
		return nil, nil
	}
	resp := timeentry.ToTimeEntryResponse(*active, s.now())
	return &resp, nil
}

// ListEntries implements timeentry.TimeClockService.
func (s *TimeClockServiceImpl) ListEntries(ctx context.Context, filter timeentry.TimeEntryFilter) (timeentry.ListTimeEntriesResponse, error) {
	if err := filter.Validate(); err != nil {
		return timeentry.ListTimeEntriesResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	entries, total, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return timeentry.ListTimeEntriesResponse{}, fmt.Errorf("failed to list entries: %w", err)
	}

	now := s.now()
	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timeentry.ToTimeEntryResponse(e, now))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return timeentry.ListTimeEntriesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Entries:    responses,
	}, nil
}

// resolveContext loads the linked job and the facility the clock-in anchors
// to. The job's facility wins when both a job and a facility ID are supplied.
func (s *TimeClockServiceImpl) resolveContext(ctx context.Context, jobID, facilityID *string) (*job.Job, *facility.Facility, error) {
	var linkedJob *job.Job
	if jobID != nil && *jobID != "" {
		j, err := s.jobRepo.GetByID(ctx, *jobID)
		if err != nil {
			return nil, nil, err
		}
		linkedJob = &j
		facilityID = &j.FacilityID
	}

	var fac *facility.Facility
	if facilityID != nil && *facilityID != "" {
		f, err := s.facilityRepo.GetByID(ctx, *facilityID)
		if err != nil {
			return nil, nil, err
		}
		fac = &f
	}

	return linkedJob, fac, nil
}

// validatePlacement runs the geofence check against the facility and the
// service-window check against the linked job's contract. Either failure is
// returned with enough detail for the client's override prompt.
func (s *TimeClockServiceImpl) validatePlacement(ctx context.Context, loc *timeentry.GeoLocationInput, linkedJob *job.Job, fac *facility.Facility, now time.Time) error {
	if fac != nil {
		radius := s.defaultRadiusM
		if fac.GeofenceRadiusM != nil {
			radius = *fac.GeofenceRadiusM
		}
		distance := geo.HaversineDistance(loc.Latitude, loc.Longitude, fac.Latitude, fac.Longitude)
		if distance > radius {
			return &timeentry.OutsideGeofenceError{DistanceM: distance, RadiusM: radius}
		}
	}

	if linkedJob == nil {
		return nil
	}

	c, err := s.contractRepo.GetByID(ctx, linkedJob.ContractID)
	if err != nil {
		return err
	}

	facilityTZ := ""
	if fac != nil && fac.Timezone != nil {
		facilityTZ = *fac.Timezone
	}

	sched, err := s.normalizer.Normalize(c.RawSchedule(), c.ServiceFrequency, facilityTZ)
	if err != nil {
		return err
	}
	if sched == nil {
		return nil
	}

	if !sched.InWindow(now) {
		return &schedule.OutsideWindowError{
			Window:   sched.WindowString(),
			Timezone: sched.Timezone,
			At:       now.In(sched.Location()),
		}
	}
	return nil
}
