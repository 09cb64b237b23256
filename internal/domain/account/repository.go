package account

import (
	"context"
)

// AccountRepository defines data access for customer accounts
type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	Update(ctx context.Context, account Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AccountFilter) ([]Account, int64, error)
}
