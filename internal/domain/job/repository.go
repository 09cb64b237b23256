package job

import (
	"context"
	"time"
)

// JobRepository defines data access for job records. BulkCreate relies on the
// store's unique constraint on (contract_id, scheduled_date) and silently
// skips rows that collide with it, which keeps concurrent generation calls
// over overlapping ranges idempotent.
type JobRepository interface {
	// BulkCreate inserts the given jobs and returns the rows actually
	// created; rows hitting the (contract_id, scheduled_date) constraint
	// are dropped, not errors.
	BulkCreate(ctx context.Context, jobs []Job) ([]Job, error)

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id string) (Job, error)

	// ExistingServiceDates returns the scheduled dates (YYYY-MM-DD, in the
	// stored date's calendar day) already occupied for a contract in [from, to].
	ExistingServiceDates(ctx context.Context, contractID string, from, to time.Time) (map[string]bool, error)

	// Update persists lifecycle and assignment mutations
	Update(ctx context.Context, job Job) error

	// List retrieves jobs with filters and pagination
	List(ctx context.Context, filter JobFilter) ([]Job, int64, error)

	// MarkMissedBefore transitions scheduled jobs whose service window ended
	// before cutoff to missed, returning how many rows changed.
	MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
