package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/team"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type teamRepository struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepository{db: db}
}

// GetByID implements team.TeamRepository.
func (r *teamRepository) GetByID(ctx context.Context, id string) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, lead_name, phone, active, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	var t team.Team
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.LeadName, &t.Phone, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, fmt.Errorf("failed to get team: %w", err)
	}

	return t, nil
}

// ListActive implements team.TeamRepository.
func (r *teamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, lead_name, phone, active, created_at, updated_at
		FROM teams
		WHERE active
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []team.Team
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.LeadName, &t.Phone, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}

	return teams, nil
}
