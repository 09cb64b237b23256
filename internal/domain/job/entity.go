package job

import "time"

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
	StatusMissed     Status = "missed"
)

var StatusValues = []string{
	string(StatusScheduled),
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusCanceled),
	string(StatusMissed),
}

// IsTerminal reports whether no further lifecycle transitions are allowed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCanceled, StatusMissed:
		return true
	default:
		return false
	}
}

type Type string

const (
	TypeScheduledService Type = "scheduled_service"
	TypeSpecialJob       Type = "special_job"
)

// Job is a single service visit at a facility. Jobs are created in batch by
// the generator or manually, and are never hard-deleted; the status field
// carries the full lifecycle.
type Job struct {
	ID         string
	JobNumber  string
	ContractID string
	FacilityID string
	AccountID  string

	// Exactly one of the two is set.
	AssignedTeamID *string
	AssignedUserID *string

	JobType Type
	Status  Status

	ScheduledDate      time.Time // calendar date of service, midnight in schedule tz
	ScheduledStartTime time.Time
	ScheduledEndTime   *time.Time
	EstimatedHours     *float64
	Notes              *string

	StartedAt       *time.Time
	CompletedAt     *time.Time
	CanceledAt      *time.Time
	CancelReason    *string
	CompletionNotes *string
	ActualHours     *float64

	// Manager override audit trail for out-of-window starts.
	OverrideReason *string
	OverrideBy     *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined display fields
	FacilityName *string
	AccountName  *string
}
