package account

import (
	"context"
)

// AccountService defines business logic for account management
type AccountService interface {
	CreateAccount(ctx context.Context, req CreateAccountRequest) (AccountResponse, error)
	GetAccount(ctx context.Context, id string) (AccountResponse, error)
	UpdateAccount(ctx context.Context, req UpdateAccountRequest) (AccountResponse, error)
	DeleteAccount(ctx context.Context, id string) error
	ListAccounts(ctx context.Context, filter AccountFilter) (ListAccountsResponse, error)
}
