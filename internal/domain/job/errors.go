package job

import (
	"errors"
	"fmt"
)

// Job domain errors
var (
	ErrJobNotFound            = errors.New("job not found")
	ErrInvalidStateTransition = errors.New("job status does not permit the requested action")
	ErrAssignmentConflict     = errors.New("job cannot be assigned to both a team and a user")
	ErrAssignmentRequired     = errors.New("job must be assigned to a team or a user")
	ErrOverrideReasonRequired = errors.New("manager override requires a reason")
	ErrOverrideNotAllowed     = errors.New("only managers may override validation failures")
)

// InvalidTransitionError names the current status and the rejected action so
// clients can show what was attempted from where.
type InvalidTransitionError struct {
	From   Status
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a job in status %q", e.Action, e.From)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidStateTransition
}
