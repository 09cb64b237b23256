package job

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNextStatusLegalTransitions(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		want   Status
	}{
		{StatusScheduled, ActionStart, StatusInProgress},
		{StatusScheduled, ActionCancel, StatusCanceled},
		{StatusInProgress, ActionComplete, StatusCompleted},
		{StatusInProgress, ActionMarkMissed, StatusMissed},
	}

	for _, c := range cases {
		got, err := NextStatus(c.from, c.action)
		require.NoError(t, err, "%s from %s", c.action, c.from)
		assert.Equal(t, c.want, got)
	}
}

// Every (status, action) pair not in the lifecycle table must fail with an
// invalid transition error naming both sides.
func TestNextStatusExhaustiveIllegalTransitions(t *testing.T) {
	legal := map[Status]map[Action]bool{
		StatusScheduled:  {ActionStart: true, ActionCancel: true},
		StatusInProgress: {ActionComplete: true, ActionMarkMissed: true},
	}

	allStatuses := []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCanceled, StatusMissed}
	allActions := []Action{ActionStart, ActionComplete, ActionCancel, ActionMarkMissed}

	for _, s := range allStatuses {
		for _, a := range allActions {
			if legal[s][a] {
				continue
			}
			_, err := NextStatus(s, a)
			require.Error(t, err, "expected %s from %s to fail", a, s)
			assert.ErrorIs(t, err, ErrInvalidStateTransition)

			var transErr *InvalidTransitionError
			require.True(t, errors.As(err, &transErr))
			assert.Equal(t, s, transErr.From)
			assert.Equal(t, a, transErr.Action)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
	assert.True(t, StatusMissed.IsTerminal())
}

func TestAssignAllowed(t *testing.T) {
	assert.True(t, AssignAllowed(StatusScheduled))
	assert.True(t, AssignAllowed(StatusInProgress))
	assert.False(t, AssignAllowed(StatusCompleted))
	assert.False(t, AssignAllowed(StatusCanceled))
	assert.False(t, AssignAllowed(StatusMissed))
}

func TestValidateAssignment(t *testing.T) {
	assert.NoError(t, ValidateAssignment(strPtr("team-1"), nil))
	assert.NoError(t, ValidateAssignment(nil, strPtr("user-1")))
	assert.ErrorIs(t, ValidateAssignment(strPtr("team-1"), strPtr("user-1")), ErrAssignmentConflict)
	assert.ErrorIs(t, ValidateAssignment(nil, nil), ErrAssignmentRequired)

	// Empty strings count as absent.
	assert.ErrorIs(t, ValidateAssignment(strPtr(""), strPtr("")), ErrAssignmentRequired)
	assert.NoError(t, ValidateAssignment(strPtr(""), strPtr("user-1")))
}
