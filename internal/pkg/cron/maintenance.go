package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
)

// Generator is the slice of the scheduling service the cron needs.
type Generator interface {
	GenerateForActiveContracts(ctx context.Context, horizonDays int) (int, error)
}

type MaintenanceJobs struct {
	jobRepo     job.JobRepository
	generator   Generator
	horizonDays int
	interval    time.Duration
	now         func() time.Time
}

func NewMaintenanceJobs(jobRepo job.JobRepository, generator Generator, horizonDays int, interval time.Duration) *MaintenanceJobs {
	return &MaintenanceJobs{
		jobRepo:     jobRepo,
		generator:   generator,
		horizonDays: horizonDays,
		interval:    interval,
		now:         time.Now,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Add("mark_missed_jobs", j.interval, j.MarkMissedJobs)
	scheduler.Add("generate_upcoming_jobs", j.interval, j.GenerateUpcomingJobs)
}

// MarkMissedJobs flips scheduled jobs whose service window has fully passed
// to missed. A grace period of one hour past the window end absorbs clock
// skew and late starts.
func (j *MaintenanceJobs) MarkMissedJobs(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-1 * time.Hour)

	marked, err := j.jobRepo.MarkMissedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to mark missed jobs: %w", err)
	}

	if marked > 0 {
		slog.Info("Cron: Marked overdue jobs as missed", "count", marked)
	}
	return nil
}

// GenerateUpcomingJobs tops up the rolling generation horizon for every
// active contract.
func (j *MaintenanceJobs) GenerateUpcomingJobs(ctx context.Context) error {
	created, err := j.generator.GenerateForActiveContracts(ctx, j.horizonDays)
	if err != nil {
		return fmt.Errorf("failed to generate upcoming jobs: %w", err)
	}

	if created > 0 {
		slog.Info("Cron: Generated upcoming jobs", "count", created, "horizon_days", j.horizonDays)
	}
	return nil
}
