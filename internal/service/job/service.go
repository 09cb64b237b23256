package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/contract"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/facility"
	jobdomain "github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/schedule"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/validator"
)

type JobServiceImpl struct {
	jobRepo      jobdomain.JobRepository
	contractRepo contract.ContractRepository
	facilityRepo facility.FacilityRepository
	normalizer   *schedule.Normalizer
	now          func() time.Time
}

func NewJobService(
	jobRepo jobdomain.JobRepository,
	contractRepo contract.ContractRepository,
	facilityRepo facility.FacilityRepository,
	normalizer *schedule.Normalizer,
) jobdomain.JobService {
	return &JobServiceImpl{
		jobRepo:      jobRepo,
		contractRepo: contractRepo,
		facilityRepo: facilityRepo,
		normalizer:   normalizer,
		now:          time.Now,
	}
}

// GetJob implements jobdomain.JobService.
func (s *JobServiceImpl) GetJob(ctx context.Context, id string) (jobdomain.JobResponse, error) {
	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return jobdomain.JobResponse{}, err
	}
	return jobdomain.ToJobResponse(j), nil
}

// ListJobs implements jobdomain.JobService.
func (s *JobServiceImpl) ListJobs(ctx context.Context, filter jobdomain.JobFilter) (jobdomain.ListJobsResponse, error) {
	if err := filter.Validate(); err != nil {
		return jobdomain.ListJobsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	jobs, total, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		return jobdomain.ListJobsResponse{}, fmt.Errorf("failed to list jobs: %w", err)
	}

	responses := make([]jobdomain.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		responses = append(responses, jobdomain.ToJobResponse(j))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return jobdomain.ListJobsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Jobs:       responses,
	}, nil
}

// StartJob implements jobdomain.JobService. Out-of-window starts are rejected
// unless the caller is a manager supplying an override reason; the override
// is recorded on the job for audit.
func (s *JobServiceImpl) StartJob(ctx context.Context, req jobdomain.StartJobRequest) (jobdomain.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return jobdomain.JobResponse{}, err
	}

	// An asserted override always needs a reason, violation or not.
	if req.ManagerOverride && validator.IsEmpty(req.OverrideReason) {
		return jobdomain.JobResponse{}, jobdomain.ErrOverrideReasonRequired
	}

	j, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return jobdomain.JobResponse{}, err
	}

	next, err := jobdomain.NextStatus(j.Status, jobdomain.ActionStart)
	if err != nil {
		return jobdomain.JobResponse{}, err
	}

	now := s.now()
	if err := s.checkServiceWindow(ctx, &j, now); err != nil {
		// Only the window violation itself is overridable; lookup and
		// normalization failures are not.
		if !errors.Is(err, schedule.ErrOutsideServiceWindow) || !req.ManagerOverride {
			return jobdomain.JobResponse{}, err
		}
		if !req.Actor.IsManager {
			return jobdomain.JobResponse{}, jobdomain.ErrOverrideNotAllowed
		}
		j.OverrideReason = &req.OverrideReason
		j.OverrideBy = &req.Actor.UserID
	}

	j.Status = next
	j.StartedAt = &now

	if err := s.jobRepo.Update(ctx, j); err != nil {
		return jobdomain.JobResponse{}, fmt.Errorf("failed to start job: %w", err)
	}

	return jobdomain.ToJobResponse(j), nil
}

// CompleteJob implements jobdomain.JobService.
func (s *JobServiceImpl) CompleteJob(ctx context.Context, req jobdomain.CompleteJobRequest) (jobdomain.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return jobdomain.JobResponse{}, err
	}

	j, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return jobdomain.JobResponse{}, err
	}

	next, err := jobdomain.NextStatus(j.Status, jobdomain.ActionComplete)
	if err != nil {
		return jobdomain.JobResponse{}, err
	}

	now := s.now()
	j.Status = next
	j.CompletedAt = &now
	if req.CompletionNotes != nil {
		j.CompletionNotes = req.CompletionNotes
	}
	if req.ActualHours != nil {
		j.ActualHours = req.ActualHours
	}

	if err := s.jobRepo.Update(ctx, j); err != nil {
		return jobdomain.JobResponse{}, fmt.Errorf("failed to complete job: %w", err)
	}

	return jobdomain.ToJobResponse(j), nil
}

// CancelJob implements jobdomain.JobService.
func (s *JobServiceImpl) CancelJob(ctx context.Context, req jobdomain.CancelJobRequest) (jobdomain.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return jobdomain.JobResponse{}, err
	}

	j, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return jobdomain.JobResponse{}, err
	}

	next, err := jobdomain.NextStatus(j.Status, jobdomain.ActionCancel)
	if err != nil {
		return jobdomain.JobResponse{}, err
	}

	now := s.now()
	j.Status = next
	j.CanceledAt = &now
	if req.Reason != nil {
		j.CancelReason = req.Reason
	}

	if err := s.jobRepo.Update(ctx, j); err != nil {
		return jobdomain.JobResponse{}, fmt.Errorf("failed to cancel job: %w", err)
	}

	return jobdomain.ToJobResponse(j), nil
}

// AssignJob implements jobdomain.JobService.
func (s *JobServiceImpl) AssignJob(ctx context.Context, req jobdomain.AssignJobRequest) (jobdomain.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return jobdomain.JobResponse{}, err
	}

	j, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return jobdomain.JobResponse{}, err
	}

	if !jobdomain.AssignAllowed(j.Status) {
		return jobdomain.JobResponse{}, &jobdomain.InvalidTransitionError{
			From:   j.Status,
			Action: jobdomain.ActionAssign,
		}
	}

	if err := jobdomain.ValidateAssignment(req.AssignedTeamID, req.AssignedUserID); err != nil {
		return jobdomain.JobResponse{}, err
	}

	j.AssignedTeamID = req.AssignedTeamID
	j.AssignedUserID = req.AssignedUserID

	if err := s.jobRepo.Update(ctx, j); err != nil {
		return jobdomain.JobResponse{}, fmt.Errorf("failed to assign job: %w", err)
	}

	return jobdomain.ToJobResponse(j), nil
}

// checkServiceWindow validates now against the job's contract service window
// on the job's scheduled date. Jobs whose contract has no resolvable schedule
// carry no window restriction.
func (s *JobServiceImpl) checkServiceWindow(ctx context.Context, j *jobdomain.Job, now time.Time) error {
	c, err := s.contractRepo.GetByID(ctx, j.ContractID)
	if err != nil {
		return err
	}

	facilityTZ := ""
	if f, ferr := s.facilityRepo.GetByID(ctx, j.FacilityID); ferr == nil && f.Timezone != nil {
		facilityTZ = *f.Timezone
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
