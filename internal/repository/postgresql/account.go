package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/account"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type accountRepository struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) account.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, name, industry, status,
	billing_address_line, billing_city, billing_state, billing_postal_code,
	primary_contact_name, primary_contact_email, primary_contact_phone,
	notes, created_at, updated_at`

func scanAccount(row pgx.Row) (account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID, &a.Name, &a.Industry, &a.Status,
		&a.BillingAddressLine, &a.BillingCity, &a.BillingState, &a.BillingPostalCode,
		&a.PrimaryContactName, &a.PrimaryContactEmail, &a.PrimaryContactPhone,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements account.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, newAccount account.Account) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO accounts (
			id, name, industry, status,
			billing_address_line, billing_city, billing_state, billing_postal_code,
			primary_contact_name, primary_contact_email, primary_contact_phone, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAccount.ID,
		newAccount.Name,
		newAccount.Industry,
		newAccount.Status,
		newAccount.BillingAddressLine,
		newAccount.BillingCity,
		newAccount.BillingState,
		newAccount.BillingPostalCode,
		newAccount.PrimaryContactName,
		newAccount.PrimaryContactEmail,
		newAccount.PrimaryContactPhone,
		newAccount.Notes,
	).Scan(&newAccount.CreatedAt, &newAccount.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return account.Account{}, account.ErrAccountNameExists
		}
		return account.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return newAccount, nil
}

// GetByID implements account.AccountRepository.
func (r *accountRepository) GetByID(ctx context.Context, id string) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE id = $1`, accountColumns)

	a, err := scanAccount(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}

// Update implements account.AccountRepository.
func (r *accountRepository) Update(ctx context.Context, a account.Account) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE accounts SET
			name = $2, industry = $3, status = $4,
			billing_address_line = $5, billing_city = $6, billing_state = $7, billing_postal_code = $8,
			primary_contact_name = $9, primary_contact_email = $10, primary_contact_phone = $11,
			notes = $12, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		a.ID, a.Name, a.Industry, a.Status,
		a.BillingAddressLine, a.BillingCity, a.BillingState, a.BillingPostalCode,
		a.PrimaryContactName, a.PrimaryContactEmail, a.PrimaryContactPhone,
		a.Notes,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return account.ErrAccountNameExists
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// Delete implements account.AccountRepository.
func (r *accountRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// List implements account.AccountRepository.
func (r *accountRepository) List(ctx context.Context, filter account.AccountFilter) ([]account.Account, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR primary_contact_name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM accounts WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM accounts
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, accountColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []account.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, total, nil
}
