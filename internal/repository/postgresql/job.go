package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type jobRepository struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `j.id, j.job_number, j.contract_id, j.facility_id, j.account_id,
	j.assigned_team_id, j.assigned_user_id, j.job_type, j.status,
	j.scheduled_date, j.scheduled_start_time, j.scheduled_end_time,
	j.estimated_hours, j.notes,
	j.started_at, j.completed_at, j.canceled_at, j.cancel_reason,
	j.completion_notes, j.actual_hours, j.override_reason, j.override_by,
	j.created_at, j.updated_at, f.name, a.name`

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.JobNumber, &j.ContractID, &j.FacilityID, &j.AccountID,
		&j.AssignedTeamID, &j.AssignedUserID, &j.JobType, &j.Status,
		&j.ScheduledDate, &j.ScheduledStartTime, &j.ScheduledEndTime,
		&j.EstimatedHours, &j.Notes,
		&j.StartedAt, &j.CompletedAt, &j.CanceledAt, &j.CancelReason,
		&j.CompletionNotes, &j.ActualHours, &j.OverrideReason, &j.OverrideBy,
		&j.CreatedAt, &j.UpdatedAt, &j.FacilityName, &j.AccountName,
	)
	return j, err
}

// BulkCreate implements job.JobRepository. Inserts run as a single pgx batch;
// ON CONFLICT DO NOTHING on (contract_id, scheduled_date) drops rows another
// generation call landed first. Job numbers embed the scheduled year for
// display but draw from one global job_numbers sequence that never resets,
// so the numeric part stays unique across years; gaps from skipped rows are
// acceptable.
func (r *jobRepository) BulkCreate(ctx context.Context, jobs []job.Job) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO jobs (
			id, job_number, contract_id, facility_id, account_id,
			assigned_team_id, assigned_user_id, job_type, status,
			scheduled_date, scheduled_start_time, scheduled_end_time,
			estimated_hours, notes
		) VALUES (
			$1,
			'JOB-' || to_char($9::date, 'YYYY') || '-' || lpad(nextval('job_numbers')::text, 5, '0'),
			$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (contract_id, scheduled_date) DO NOTHING
		RETURNING job_number, created_at, updated_at
	`

	batch := &pgx.Batch{}
	for _, j := range jobs {
		batch.Queue(query,
			j.ID, j.ContractID, j.FacilityID, j.AccountID,
			j.AssignedTeamID, j.AssignedUserID, j.JobType, j.Status,
			j.ScheduledDate, j.ScheduledStartTime, j.ScheduledEndTime,
			j.EstimatedHours, j.Notes,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var created []job.Job
	for _, j := range jobs {
		err := results.QueryRow().Scan(&j.JobNumber, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Constraint collision; the row already exists.
				continue
			}
			return nil, fmt.Errorf("failed to create job: %w", err)
		}
		created = append(created, j)
	}

	return created, nil
}

// GetByID implements job.JobRepository.
func (r *jobRepository) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs j
		JOIN facilities f ON f.id = j.facility_id
		JOIN accounts a ON a.id = j.account_id
		WHERE j.id = $1
	`, jobColumns)

	j, err := scanJob(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job: %w", err)
	}

	return j, nil
}

// ExistingServiceDates implements job.JobRepository.
func (r *jobRepository) ExistingServiceDates(ctx context.Context, contractID string, from, to time.Time) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT scheduled_date
		FROM jobs
		WHERE contract_id = $1
		  AND scheduled_date BETWEEN $2 AND $3
	`

	rows, err := q.Query(ctx, query, contractID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]bool)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled date: %w", err)
		}
		dates[d.Format("2006-01-02")] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scheduled dates: %w", err)
	}

	return dates, nil
}

// Update implements job.JobRepository.
func (r *jobRepository) Update(ctx context.Context, j job.Job) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE jobs SET
			assigned_team_id = $2, assigned_user_id = $3, status = $4,
			started_at = $5, completed_at = $6, canceled_at = $7,
			cancel_reason = $8, completion_notes = $9, actual_hours = $10,
			override_reason = $11, override_by = $12, notes = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		j.ID, j.AssignedTeamID, j.AssignedUserID, j.Status,
		j.StartedAt, j.CompletedAt, j.CanceledAt,
		j.CancelReason, j.CompletionNotes, j.ActualHours,
		j.OverrideReason, j.OverrideBy, j.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}

	return nil
}

// List implements job.JobRepository.
func (r *jobRepository) List(ctx context.Context, filter job.JobFilter) ([]job.Job, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.ContractID != nil && *filter.ContractID != "" {
		conditions = append(conditions, fmt.Sprintf("j.contract_id = $%d", argIdx))
		args = append(args, *filter.ContractID)
		argIdx++
	}
	if filter.FacilityID != nil && *filter.FacilityID != "" {
		conditions = append(conditions, fmt.Sprintf("j.facility_id = $%d", argIdx))
		args = append(args, *filter.FacilityID)
		argIdx++
	}
	if filter.AccountID != nil && *filter.AccountID != "" {
		conditions = append(conditions, fmt.Sprintf("j.account_id = $%d", argIdx))
		args = append(args, *filter.AccountID)
		argIdx++
	}
	if filter.AssignedUserID != nil && *filter.AssignedUserID != "" {
		conditions = append(conditions, fmt.Sprintf("j.assigned_user_id = $%d", argIdx))
		args = append(args, *filter.AssignedUserID)
		argIdx++
	}
	if filter.AssignedTeamID != nil && *filter.AssignedTeamID != "" {
		conditions = append(conditions, fmt.Sprintf("j.assigned_team_id = $%d", argIdx))
		args = append(args, *filter.AssignedTeamID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("j.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("j.scheduled_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("j.scheduled_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs j WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	sortBy := "j.scheduled_date"
	switch filter.SortBy {
	case "job_number":
		sortBy = "j.job_number"
	case "status":
		sortBy = "j.status"
	}
	sortOrder := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs j
		JOIN facilities f ON f.id = j.facility_id
		JOIN accounts a ON a.id = j.account_id
		WHERE %s
		ORDER BY %s %s, j.job_number ASC
		LIMIT $%d OFFSET $%d
	`, jobColumns, where, sortBy, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return jobs, total, nil
}

// MarkMissedBefore implements job.JobRepository. Scheduled jobs whose window
// closed before cutoff were never started and flip to missed in one statement.
func (r *jobRepository) MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE jobs SET
			status = 'missed', updated_at = NOW()
		WHERE status = 'scheduled'
		  AND COALESCE(scheduled_end_time, scheduled_date + interval '1 day') < $1
	`

	tag, err := q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark missed jobs: %w", err)
	}

	return tag.RowsAffected(), nil
}
