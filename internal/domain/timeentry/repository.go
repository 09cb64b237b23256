package timeentry

import (
	"context"
)

// TimeEntryRepository defines data access for time entries. Create must run
// against a store with a partial unique index on (user_id) WHERE
// status = 'active' and surface a collision as ErrActiveEntryExists, so two
// near-simultaneous clock-ins from the same user cannot both land.
type TimeEntryRepository interface {
	// Create inserts a new entry; returns ErrActiveEntryExists when the
	// single-active-entry constraint rejects it.
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// GetByID retrieves an entry by ID
	GetByID(ctx context.Context, id string) (TimeEntry, error)

	// GetActiveByUser returns the user's open entry, or nil when none exists
	GetActiveByUser(ctx context.Context, userID string) (*TimeEntry, error)

	// Update persists clock-out and status mutations
	Update(ctx context.Context, entry TimeEntry) error

	// List retrieves entries with filters and pagination
	List(ctx context.Context, filter TimeEntryFilter) ([]TimeEntry, int64, error)
}
