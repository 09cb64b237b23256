package job

type Action string

const (
	ActionStart      Action = "start"
	ActionComplete   Action = "complete"
	ActionCancel     Action = "cancel"
	ActionMarkMissed Action = "mark_missed"
	ActionAssign     Action = "assign"
)

// transitions is the full lifecycle table. Cancellation is only possible
// before a start; once in progress the only exits are completed or missed.
var transitions = map[Status]map[Action]Status{
	StatusScheduled: {
		ActionStart:  StatusInProgress,
		ActionCancel: StatusCanceled,
	},
	StatusInProgress: {
		ActionComplete:   StatusCompleted,
		ActionMarkMissed: StatusMissed,
	},
}

// NextStatus returns the status the action leads to from current, or an
// InvalidTransitionError when the pair is not in the lifecycle table.
func NextStatus(current Status, action Action) (Status, error) {
	if next, ok := transitions[current][action]; ok {
		return next, nil
	}
	return "", &InvalidTransitionError{From: current, Action: action}
}

// AssignAllowed reports whether assignment may change in the given status.
// Assignment never changes the status itself.
func AssignAllowed(current Status) bool {
	return current == StatusScheduled || current == StatusInProgress
}

// ValidateAssignment enforces the team-xor-user invariant on an assignment
// pair. Both set is a hard conflict; neither set is reported separately so
// callers can distinguish "fix your request" from "pick an assignee".
func ValidateAssignment(teamID, userID *string) error {
	hasTeam := teamID != nil && *teamID != ""
	hasUser := userID != nil && *userID != ""
	if hasTeam && hasUser {
		return ErrAssignmentConflict
	}
	if !hasTeam && !hasUser {
		return ErrAssignmentRequired
	}
	return nil
}
