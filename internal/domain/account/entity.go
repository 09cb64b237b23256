package account

import "time"

type Status string

const (
	StatusProspect Status = "prospect"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var StatusValues = []string{
	string(StatusProspect),
	string(StatusActive),
	string(StatusInactive),
}

// Account is a customer organization. Facilities and contracts hang off it.
type Account struct {
	ID       string
	Name     string
	Industry *string
	Status   Status

	BillingAddressLine *string
	BillingCity        *string
	BillingState       *string
	BillingPostalCode  *string

	PrimaryContactName  *string
	PrimaryContactEmail *string
	PrimaryContactPhone *string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
