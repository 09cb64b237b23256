package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobRepo struct {
	markCutoff time.Time
	markCalls  int
	marked     int64
	markErr    error
}

func (f *fakeJobRepo) BulkCreate(_ context.Context, jobs []job.Job) ([]job.Job, error) {
	return jobs, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, _ string) (job.Job, error) {
	return job.Job{}, job.ErrJobNotFound
}

func (f *fakeJobRepo) ExistingServiceDates(_ context.Context, _ string, _, _ time.Time) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (f *fakeJobRepo) Update(_ context.Context, _ job.Job) error {
	return nil
}

func (f *fakeJobRepo) List(_ context.Context, _ job.JobFilter) ([]job.Job, int64, error) {
	return nil, 0, nil
}

func (f *fakeJobRepo) MarkMissedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.markCalls++
	f.markCutoff = cutoff
	return f.marked, f.markErr
}

type fakeGenerator struct {
	created int
	err     error
	calls   int
}

func (f *fakeGenerator) GenerateForActiveContracts(_ context.Context, _ int) (int, error) {
	f.calls++
	return f.created, f.err
}

func TestMarkMissedJobs_CutoffIsOneHourBeforeNow(t *testing.T) {
	repo := &fakeJobRepo{marked: 3}
	m := NewMaintenanceJobs(repo, &fakeGenerator{}, 30, time.Hour)
	frozen := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return frozen }

	err := m.MarkMissedJobs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.markCalls)
	assert.Equal(t, frozen.Add(-1*time.Hour), repo.markCutoff)
}

func TestMarkMissedJobs_RepoErrorSurfaces(t *testing.T) {
	repo := &fakeJobRepo{markErr: errors.New("connection reset")}
	m := NewMaintenanceJobs(repo, &fakeGenerator{}, 30, time.Hour)

	err := m.MarkMissedJobs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRunAll_GeneratorFailureDoesNotStopMissedSweep(t *testing.T) {
	repo := &fakeJobRepo{marked: 2}
	gen := &fakeGenerator{err: errors.New("contract query failed")}
	m := NewMaintenanceJobs(repo, gen, 30, time.Hour)

	scheduler := NewScheduler()
	m.RegisterJobs(scheduler)

	err := scheduler.RunAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate_upcoming_jobs")
	assert.Contains(t, err.Error(), "contract query failed")

	assert.Equal(t, 1, repo.markCalls)
	assert.Equal(t, 1, gen.calls)
}

func TestRunAll_AllHealthy(t *testing.T) {
	repo := &fakeJobRepo{}
	gen := &fakeGenerator{created: 5}
	m := NewMaintenanceJobs(repo, gen, 30, time.Hour)

	scheduler := NewScheduler()
	m.RegisterJobs(scheduler)

	require.NoError(t, scheduler.RunAll(context.Background()))
	assert.Equal(t, 1, repo.markCalls)
	assert.Equal(t, 1, gen.calls)
}
