package team

import (
	"context"
	"errors"
)

var ErrTeamNotFound = errors.New("team not found")

// TeamRepository defines read access to subcontractor teams. Team management
// lives in the staffing workflow outside this service.
type TeamRepository interface {
	GetByID(ctx context.Context, id string) (Team, error)
	ListActive(ctx context.Context) ([]Team, error)
}
