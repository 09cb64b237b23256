package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/facility"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type facilityRepository struct {
	db *database.DB
}

func NewFacilityRepository(db *database.DB) facility.FacilityRepository {
	return &facilityRepository{db: db}
}

const facilityColumns = `f.id, f.account_id, f.name,
	f.address_line, f.city, f.state, f.postal_code,
	f.latitude, f.longitude, f.geofence_radius_m, f.timezone,
	f.square_footage, f.notes, f.created_at, f.updated_at, a.name`

func scanFacility(row pgx.Row) (facility.Facility, error) {
	var f facility.Facility
	err := row.Scan(
		&f.ID, &f.AccountID, &f.Name,
		&f.AddressLine, &f.City, &f.State, &f.PostalCode,
		&f.Latitude, &f.Longitude, &f.GeofenceRadiusM, &f.Timezone,
		&f.SquareFootage, &f.Notes, &f.CreatedAt, &f.UpdatedAt, &f.AccountName,
	)
	return f, err
}

// Create implements facility.FacilityRepository.
func (r *facilityRepository) Create(ctx context.Context, newFacility facility.Facility) (facility.Facility, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO facilities (
			id, account_id, name, address_line, city, state, postal_code,
			latitude, longitude, geofence_radius_m, timezone, square_footage, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newFacility.ID,
		newFacility.AccountID,
		newFacility.Name,
		newFacility.AddressLine,
		newFacility.City,
		newFacility.State,
		newFacility.PostalCode,
		newFacility.Latitude,
		newFacility.Longitude,
		newFacility.GeofenceRadiusM,
		newFacility.Timezone,
		newFacility.SquareFootage,
		newFacility.Notes,
	).Scan(&newFacility.CreatedAt, &newFacility.UpdatedAt)

	if err != nil {
		return facility.Facility{}, fmt.Errorf("failed to create facility: %w", err)
	}

	return newFacility, nil
}

// GetByID implements facility.FacilityRepository.
func (r *facilityRepository) GetByID(ctx context.Context, id string) (facility.Facility, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM facilities f
		JOIN accounts a ON a.id = f.account_id
		WHERE f.id = $1
	`, facilityColumns)

	f, err := scanFacility(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return facility.Facility{}, facility.ErrFacilityNotFound
		}
		return facility.Facility{}, fmt.Errorf("failed to get facility: %w", err)
	}

	return f, nil
}

// Update implements facility.FacilityRepository.
func (r *facilityRepository) Update(ctx context.Context, f facility.Facility) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE facilities SET
			name = $2, address_line = $3, city = $4, state = $5, postal_code = $6,
			latitude = $7, longitude = $8, geofence_radius_m = $9, timezone = $10,
			square_footage = $11, notes = $12, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		f.ID, f.Name, f.AddressLine, f.City, f.State, f.PostalCode,
		f.Latitude, f.Longitude, f.GeofenceRadiusM, f.Timezone,
		f.SquareFootage, f.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update facility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return facility.ErrFacilityNotFound
	}

	return nil
}

// Delete implements facility.FacilityRepository.
func (r *facilityRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete facility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return facility.ErrFacilityNotFound
	}

	return nil
}

// List implements facility.FacilityRepository.
func (r *facilityRepository) List(ctx context.Context, filter facility.FacilityFilter) ([]facility.Facility, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.AccountID != nil && *filter.AccountID != "" {
		conditions = append(conditions, fmt.Sprintf("f.account_id = $%d", argIdx))
		args = append(args, *filter.AccountID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(f.name ILIKE $%d OR f.city ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM facilities f WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count facilities: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM facilities f
		JOIN accounts a ON a.id = f.account_id
		WHERE %s
		ORDER BY f.name ASC
		LIMIT $%d OFFSET $%d
	`, facilityColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer rows.Close()

	var facilities []facility.Facility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan facility: %w", err)
		}
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate facilities: %w", err)
	}

	return facilities, total, nil
}
