package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/contract"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/facility"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/schedule"
	"github.com/google/uuid"
)

// Service expands contract service schedules into concrete job records.
// Generation is idempotent on (contract_id, scheduled_date): repeated or
// overlapping calls skip dates that already carry a job.
type Service interface {
	// GenerateJobs expands the contract's schedule over [start, end] inclusive
	GenerateJobs(ctx context.Context, req job.GenerateJobsRequest) (job.GenerationResponse, error)

	// GenerateForActiveContracts runs rolling-horizon generation for every
	// active contract; used by the maintenance cron
	GenerateForActiveContracts(ctx context.Context, horizonDays int) (created int, err error)
}

type SchedulingServiceImpl struct {
	contractRepo contract.ContractRepository
	facilityRepo facility.FacilityRepository
	jobRepo      job.JobRepository
	normalizer   *schedule.Normalizer
	now          func() time.Time
}

func NewSchedulingService(
	contractRepo contract.ContractRepository,
	facilityRepo facility.FacilityRepository,
	jobRepo job.JobRepository,
	normalizer *schedule.Normalizer,
) Service {
	return &SchedulingServiceImpl{
		contractRepo: contractRepo,
		facilityRepo: facilityRepo,
		jobRepo:      jobRepo,
		normalizer:   normalizer,
		now:          time.Now,
	}
}

// GenerateJobs implements Service.
func (s *SchedulingServiceImpl) GenerateJobs(ctx context.Context, req job.GenerateJobsRequest) (job.GenerationResponse, error) {
	if err := req.Validate(); err != nil {
		return job.GenerationResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	c, err := s.contractRepo.GetByID(ctx, req.ContractID)
	if err != nil {
		return job.GenerationResponse{}, err
	}

	if c.Status != contract.StatusActive {
		return job.GenerationResponse{}, contract.ErrContractNotActive
	}

	// Both assignments present poisons every candidate, so the whole call
	// is rejected before any insert; partial generation must not occur.
	if err := job.ValidateAssignment(c.AssignedTeamID, c.AssignedUserID); err != nil {
		return job.GenerationResponse{}, err
	}

	sched, err := s.resolveSchedule(ctx, &c)
	if err != nil {
		return job.GenerationResponse{}, err
	}
	if sched == nil {
		// No recurrence can be determined; generation is a no-op.
		return job.GenerationResponse{Created: []job.JobResponse{}}, nil
	}

	existing, err := s.jobRepo.ExistingServiceDates(ctx, c.ID, start, end)
	if err != nil {
		return job.GenerationResponse{}, fmt.Errorf("failed to load existing service dates: %w", err)
	}

	var candidates []job.Job
	skipped := 0
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if !sched.HasDay(date.Weekday()) {
			continue
		}
		if existing[date.Format("2006-01-02")] {
			skipped++
			continue
		}
		candidates = append(candidates, s.buildJob(&c, sched, date))
	}

	if len(candidates) == 0 {
		return job.GenerationResponse{Created: []job.JobResponse{}, SkippedExisting: skipped}, nil
	}

	created, err := s.jobRepo.BulkCreate(ctx, candidates)
	if err != nil {
		return job.GenerationResponse{}, fmt.Errorf("failed to create jobs: %w", err)
	}

	// Rows lost to the unique constraint between the pre-check and the
	// insert were created by a concurrent call; count them as skips.
	skipped += len(candidates) - len(created)

	sort.Slice(created, func(i, j int) bool {
		return created[i].ScheduledDate.Before(created[j].ScheduledDate)
	})

	responses := make([]job.JobResponse, 0, len(created))
	for _, j := range created {
		responses = append(responses, job.ToJobResponse(j))
	}

	return job.GenerationResponse{
		Created:         responses,
		CreatedCount:    len(responses),
		SkippedExisting: skipped,
	}, nil
}

// GenerateForActiveContracts implements Service.
func (s *SchedulingServiceImpl) GenerateForActiveContracts(ctx context.Context, horizonDays int) (int, error) {
	contracts, err := s.contractRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active contracts: %w", err)
	}

	today := s.now().UTC().Format("2006-01-02")
	horizon := s.now().UTC().AddDate(0, 0, horizonDays).Format("2006-01-02")

	total := 0
	for _, c := range contracts {
		result, err := s.GenerateJobs(ctx, job.GenerateJobsRequest{
			ContractID: c.ID,
			StartDate:  today,
			EndDate:    horizon,
		})
		if err != nil {
			// One bad contract must not block the rest of the horizon run.
			continue
		}
		total += result.CreatedCount
	}

	return total, nil
}

func (s *SchedulingServiceImpl) resolveSchedule(ctx context.Context, c *contract.Contract) (*schedule.ServiceSchedule, error) {
	facilityTZ := ""
	f, err := s.facilityRepo.GetByID(ctx, c.FacilityID)
	if err == nil && f.Timezone != nil {
		facilityTZ = *f.Timezone
	}
	// A facility lookup failure only costs the timezone fallback; the
	// normalizer lands on UTC.
	return s.normalizer.Normalize(c.RawSchedule(), c.ServiceFrequency, facilityTZ)
}

func (s *SchedulingServiceImpl) buildJob(c *contract.Contract, sched *schedule.ServiceSchedule, date time.Time) job.Job {
	windowStart, windowEnd := sched.WindowOnDate(date)
	endUTC := windowEnd.UTC()

	return job.Job{
		ID:                 uuid.NewString(),
		ContractID:         c.ID,
		FacilityID:         c.FacilityID,
		AccountID:          c.AccountID,
		AssignedTeamID:     c.AssignedTeamID,
		AssignedUserID:     c.AssignedUserID,
		JobType:            job.TypeScheduledService,
		Status:             job.StatusScheduled,
		ScheduledDate:      time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		ScheduledStartTime: windowStart.UTC(),
		ScheduledEndTime:   &endUTC,
		EstimatedHours:     c.EstimatedHours,
	}
}
