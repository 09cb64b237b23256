package contract

import (
	"context"
)

// ContractRepository defines read access plus the single mutation the
// scheduling surface needs (assignment). Full contract CRUD lives in the
// sales workflow outside this service.
type ContractRepository interface {
	// GetByID retrieves a contract by ID
	GetByID(ctx context.Context, id string) (Contract, error)

	// List retrieves contracts with filters and pagination
	List(ctx context.Context, filter ContractFilter) ([]Contract, int64, error)

	// ListActive returns all contracts eligible for rolling job generation
	ListActive(ctx context.Context) ([]Contract, error)

	// UpdateAssignment swaps the contract's team-xor-user assignment
	UpdateAssignment(ctx context.Context, id string, teamID, userID *string) error
}
