package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/contract"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `c.id, c.account_id, c.facility_id, c.status,
	c.service_frequency, c.schedule_days, c.window_start_min, c.window_end_min, c.timezone,
	c.assigned_team_id, c.assigned_user_id, c.billing_rate, c.estimated_hours,
	c.start_date, c.end_date, c.created_at, c.updated_at, a.name, f.name`

func scanContract(row pgx.Row) (contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID, &c.AccountID, &c.FacilityID, &c.Status,
		&c.ServiceFrequency, &c.ScheduleDays, &c.WindowStartMin, &c.WindowEndMin, &c.Timezone,
		&c.AssignedTeamID, &c.AssignedUserID, &c.BillingRate, &c.EstimatedHours,
		&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt, &c.AccountName, &c.FacilityName,
	)
	return c, err
}

// GetByID implements contract.ContractRepository.
func (r *contractRepository) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM contracts c
		JOIN accounts a ON a.id = c.account_id
		JOIN facilities f ON f.id = c.facility_id
		WHERE c.id = $1
	`, contractColumns)

	c, err := scanContract(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}

	return c, nil
}

// List implements contract.ContractRepository.
func (r *contractRepository) List(ctx context.Context, filter contract.ContractFilter) ([]contract.Contract, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.AccountID != nil && *filter.AccountID != "" {
		conditions = append(conditions, fmt.Sprintf("c.account_id = $%d", argIdx))
		args = append(args, *filter.AccountID)
		argIdx++
	}
	if filter.FacilityID != nil && *filter.FacilityID != "" {
		conditions = append(conditions, fmt.Sprintf("c.facility_id = $%d", argIdx))
		args = append(args, *filter.FacilityID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM contracts c WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contracts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM contracts c
		JOIN accounts a ON a.id = c.account_id
		JOIN facilities f ON f.id = c.facility_id
		WHERE %s
		ORDER BY c.start_date DESC
		LIMIT $%d OFFSET $%d
	`, contractColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate contracts: %w", err)
	}

	return contracts, total, nil
}

// ListActive implements contract.ContractRepository. Contracts whose end date
// has passed are excluded even if their status was never flipped.
func (r *contractRepository) ListActive(ctx context.Context) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM contracts c
		JOIN accounts a ON a.id = c.account_id
		JOIN facilities f ON f.id = c.facility_id
		WHERE c.status = 'active'
		  AND (c.end_date IS NULL OR c.end_date >= CURRENT_DATE)
		ORDER BY c.id
	`, contractColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active contracts: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contracts: %w", err)
	}

	return contracts, nil
}

// UpdateAssignment implements contract.ContractRepository.
func (r *contractRepository) UpdateAssignment(ctx context.Context, id string, teamID, userID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts SET
			assigned_team_id = $2, assigned_user_id = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to update contract assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}

	return nil
}
