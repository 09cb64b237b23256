package timeentry

import (
	"context"
)

// TimeClockService defines the clock-in/out business logic
type TimeClockService interface {
	// ClockIn opens a time entry after geofence, service-window, location
	// and single-active-entry validation
	ClockIn(ctx context.Context, req ClockInRequest) (TimeEntryResponse, error)

	// ClockOut closes the caller's active entry
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockOutResponse, error)

	// GetActiveEntry returns the caller's open entry, if any
	GetActiveEntry(ctx context.Context, userID string) (*TimeEntryResponse, error)

	// ListEntries retrieves entries with filters (admin/manager)
	ListEntries(ctx context.Context, filter TimeEntryFilter) (ListTimeEntriesResponse, error)
}
