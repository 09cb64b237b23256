package account

import (
	"context"
	"fmt"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/account"
	"github.com/google/uuid"
)

type AccountServiceImpl struct {
	accountRepo account.AccountRepository
	now         func() time.Time
}

func NewAccountService(accountRepo account.AccountRepository) account.AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		now:         time.Now,
	}
}

// CreateAccount implements account.AccountService.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, req account.CreateAccountRequest) (account.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return account.AccountResponse{}, err
	}

	status := account.StatusProspect
	if req.Status != nil {
		status = account.Status(*req.Status)
	}

	now := s.now()
	a := account.Account{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Industry:            req.Industry,
		Status:              status,
		BillingAddressLine:  req.BillingAddressLine,
		BillingCity:         req.BillingCity,
		BillingState:        req.BillingState,
		BillingPostalCode:   req.BillingPostalCode,
		PrimaryContactName:  req.PrimaryContactName,
		PrimaryContactEmail: req.PrimaryContactEmail,
		PrimaryContactPhone: req.PrimaryContactPhone,
		Notes:               req.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := s.accountRepo.Create(ctx, a)
	if err != nil {
		return account.AccountResponse{}, err
	}

	return toAccountResponse(created), nil
}

// GetAccount implements account.AccountService.
func (s *AccountServiceImpl) GetAccount(ctx context.Context, id string) (account.AccountResponse, error) {
	a, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return account.AccountResponse{}, err
	}
	return toAccountResponse(a), nil
}

// UpdateAccount implements account.AccountService. Only fields present in the
// request change; absent fields keep their stored values.
func (s *AccountServiceImpl) UpdateAccount(ctx context.Context, req account.UpdateAccountRequest) (account.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return account.AccountResponse{}, err
	}

	a, err := s.accountRepo.GetByID(ctx, req.ID)
	if err != nil {
		return account.AccountResponse{}, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Industry != nil {
		a.Industry = req.Industry
	}
	if req.Status != nil {
		a.Status = account.Status(*req.Status)
	}
	if req.BillingAddressLine != nil {
		a.BillingAddressLine = req.BillingAddressLine
	}
	if req.BillingCity != nil {
		a.BillingCity = req.BillingCity
	}
	if req.BillingState != nil {
		a.BillingState = req.BillingState
	}
	if req.BillingPostalCode != nil {
		a.BillingPostalCode = req.BillingPostalCode
	}
	if req.PrimaryContactName != nil {
		a.PrimaryContactName = req.PrimaryContactName
	}
	if req.PrimaryContactEmail != nil {
		a.PrimaryContactEmail = req.PrimaryContactEmail
	}
	if req.PrimaryContactPhone != nil {
		a.PrimaryContactPhone = req.PrimaryContactPhone
	}
	if req.Notes != nil {
		a.Notes = req.Notes
	}
	a.UpdatedAt = s.now()

	if err := s.accountRepo.Update(ctx, a); err != nil {
		return account.AccountResponse{}, fmt.Errorf("failed to update account: %w", err)
	}

	return toAccountResponse(a), nil
}

// DeleteAccount implements account.AccountService.
func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.accountRepo.Delete(ctx, id)
}

// ListAccounts implements account.AccountService.
func (s *AccountServiceImpl) ListAccounts(ctx context.Context, filter account.AccountFilter) (account.ListAccountsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	accounts, total, err := s.accountRepo.List(ctx, filter)
	if err != nil {
		return account.ListAccountsResponse{}, fmt.Errorf("failed to list accounts: %w", err)
	}

	responses := make([]account.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, toAccountResponse(a))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return account.ListAccountsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Accounts:   responses,
	}, nil
}

const timeFormat = "2006-01-02 15:04:05"

func toAccountResponse(a account.Account) account.AccountResponse {
	return account.AccountResponse{
		ID:                  a.ID,
		Name:                a.Name,
		Industry:            a.Industry,
		Status:              string(a.Status),
		BillingAddressLine:  a.BillingAddressLine,
		BillingCity:         a.BillingCity,
		BillingState:        a.BillingState,
		BillingPostalCode:   a.BillingPostalCode,
		PrimaryContactName:  a.PrimaryContactName,
		PrimaryContactEmail: a.PrimaryContactEmail,
		PrimaryContactPhone: a.PrimaryContactPhone,
		Notes:               a.Notes,
		CreatedAt:           a.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:           a.UpdatedAt.UTC().Format(timeFormat),
	}
}
