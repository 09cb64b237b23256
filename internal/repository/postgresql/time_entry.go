package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/timeentry"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

const timeEntryColumns = `t.id, t.user_id, t.job_id, t.facility_id,
	t.clock_in, t.clock_out, t.status,
	t.clock_in_latitude, t.clock_in_longitude, t.clock_in_accuracy_m, t.clock_in_captured_at, t.clock_in_source,
	t.clock_out_latitude, t.clock_out_longitude, t.clock_out_accuracy_m, t.clock_out_captured_at, t.clock_out_source,
	t.break_started_at, t.override_reason, t.override_by,
	t.created_at, t.updated_at, u.name, f.name, j.job_number`

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry
	var inLat, inLon, inAcc *float64
	var inCaptured *time.Time
	var inSource *string
	var outLat, outLon, outAcc *float64
	var outCaptured *time.Time
	var outSource *string

	err := row.Scan(
		&e.ID, &e.UserID, &e.JobID, &e.FacilityID,
		&e.ClockIn, &e.ClockOut, &e.Status,
		&inLat, &inLon, &inAcc, &inCaptured, &inSource,
		&outLat, &outLon, &outAcc, &outCaptured, &outSource,
		&e.BreakStartedAt, &e.OverrideReason, &e.OverrideBy,
		&e.CreatedAt, &e.UpdatedAt, &e.UserName, &e.FacilityName, &e.JobNumber,
	)
	if err != nil {
		return timeentry.TimeEntry{}, err
	}

	e.ClockInLocation = buildLocation(inLat, inLon, inAcc, inCaptured, inSource)
	e.ClockOutLocation = buildLocation(outLat, outLon, outAcc, outCaptured, outSource)

	return e, nil
}

func buildLocation(lat, lon, acc *float64, capturedAt *time.Time, source *string) *timeentry.GeoLocation {
	if lat == nil || lon == nil {
		return nil
	}
	loc := &timeentry.GeoLocation{
		Latitude:  *lat,
		Longitude: *lon,
		AccuracyM: acc,
	}
	if capturedAt != nil {
		loc.CapturedAt = *capturedAt
	}
	if source != nil {
		loc.Source = *source
	}
	return loc
}

// Create implements timeentry.TimeEntryRepository. The partial unique index
// on (user_id) WHERE status = 'active' rejects a second open entry; the
// 23505 collision surfaces as ErrActiveEntryExists.
func (r *timeEntryRepository) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			id, user_id, job_id, facility_id, clock_in, status,
			clock_in_latitude, clock_in_longitude, clock_in_accuracy_m,
			clock_in_captured_at, clock_in_source,
			override_reason, override_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING created_at, updated_at
	`

	var inLat, inLon, inAcc *float64
	var inCaptured *time.Time
	var inSource *string
	if entry.ClockInLocation != nil {
		inLat = &entry.ClockInLocation.Latitude
		inLon = &entry.ClockInLocation.Longitude
		inAcc = entry.ClockInLocation.AccuracyM
		inCaptured = &entry.ClockInLocation.CapturedAt
		inSource = &entry.ClockInLocation.Source
	}

	err := q.QueryRow(ctx, query,
		entry.ID, entry.UserID, entry.JobID, entry.FacilityID,
		entry.ClockIn, entry.Status,
		inLat, inLon, inAcc, inCaptured, inSource,
		entry.OverrideReason, entry.OverrideBy,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timeentry.TimeEntry{}, timeentry.ErrActiveEntryExists
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_entries t
		JOIN users u ON u.id = t.user_id
		LEFT JOIN facilities f ON f.id = t.facility_id
		LEFT JOIN jobs j ON j.id = t.job_id
		WHERE t.id = $1
	`, timeEntryColumns)

	e, err := scanTimeEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}

	return e, nil
}

// GetActiveByUser implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) GetActiveByUser(ctx context.Context, userID string) (*timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_entries t
		JOIN users u ON u.id = t.user_id
		LEFT JOIN facilities f ON f.id = t.facility_id
		LEFT JOIN jobs j ON j.id = t.job_id
		WHERE t.user_id = $1
		  AND t.status = 'active'
		ORDER BY t.clock_in DESC
		LIMIT 1
	`, timeEntryColumns)

	e, err := scanTimeEntry(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active entry: %w", err)
	}

	return &e, nil
}

// Update implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) Update(ctx context.Context, entry timeentry.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries SET
			clock_out = $2, status = $3,
			clock_out_latitude = $4, clock_out_longitude = $5, clock_out_accuracy_m = $6,
			clock_out_captured_at = $7, clock_out_source = $8,
			break_started_at = $9, override_reason = $10, override_by = $11,
			updated_at = NOW()
		WHERE id = $1
	`

	var outLat, outLon, outAcc *float64
	var outCaptured *time.Time
	var outSource *string
	if entry.ClockOutLocation != nil {
		outLat = &entry.ClockOutLocation.Latitude
		outLon = &entry.ClockOutLocation.Longitude
		outAcc = entry.ClockOutLocation.AccuracyM
		outCaptured = &entry.ClockOutLocation.CapturedAt
		outSource = &entry.ClockOutLocation.Source
	}

	tag, err := q.Exec(ctx, query,
		entry.ID, entry.ClockOut, entry.Status,
		outLat, outLon, outAcc, outCaptured, outSource,
		entry.BreakStartedAt, entry.OverrideReason, entry.OverrideBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotFound
	}

	return nil
}

// List implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) List(ctx context.Context, filter timeentry.TimeEntryFilter) ([]timeentry.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("t.user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.JobID != nil && *filter.JobID != "" {
		conditions = append(conditions, fmt.Sprintf("t.job_id = $%d", argIdx))
		args = append(args, *filter.JobID)
		argIdx++
	}
	if filter.FacilityID != nil && *filter.FacilityID != "" {
		conditions = append(conditions, fmt.Sprintf("t.facility_id = $%d", argIdx))
		args = append(args, *filter.FacilityID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("t.clock_in >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("t.clock_in < ($%d::date + interval '1 day')", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM time_entries t WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	sortBy := "t.clock_in"
	switch filter.SortBy {
	case "clock_out":
		sortBy = "t.clock_out"
	case "status":
		sortBy = "t.status"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_entries t
		JOIN users u ON u.id = t.user_id
		LEFT JOIN facilities f ON f.id = t.facility_id
		LEFT JOIN jobs j ON j.id = t.job_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, timeEntryColumns, where, sortBy, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, total, nil
}
