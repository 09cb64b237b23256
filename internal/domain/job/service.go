package job

import (
	"context"
)

// JobService defines lifecycle operations on jobs. Generation lives in the
// scheduling service; everything here acts on one existing job.
type JobService interface {
	// GetJob retrieves a single job by ID
	GetJob(ctx context.Context, id string) (JobResponse, error)

	// ListJobs retrieves jobs with filters (admin/manager)
	ListJobs(ctx context.Context, filter JobFilter) (ListJobsResponse, error)

	// StartJob moves a scheduled job to in_progress, enforcing the service
	// window unless a manager override is supplied
	StartJob(ctx context.Context, req StartJobRequest) (JobResponse, error)

	// CompleteJob moves an in_progress job to completed
	CompleteJob(ctx context.Context, req CompleteJobRequest) (JobResponse, error)

	// CancelJob cancels a job that has not started
	CancelJob(ctx context.Context, req CancelJobRequest) (JobResponse, error)

	// AssignJob changes the team-xor-user assignment without touching status
	AssignJob(ctx context.Context, req AssignJobRequest) (JobResponse, error)
}
