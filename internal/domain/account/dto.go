package account

import (
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/validator"
)

type CreateAccountRequest struct {
	Name                string  `json:"name"`
	Industry            *string `json:"industry"`
	Status              *string `json:"status"`
	BillingAddressLine  *string `json:"billing_address_line"`
	BillingCity         *string `json:"billing_city"`
	BillingState        *string `json:"billing_state"`
	BillingPostalCode   *string `json:"billing_postal_code"`
	PrimaryContactName  *string `json:"primary_contact_name"`
	PrimaryContactEmail *string `json:"primary_contact_email"`
	PrimaryContactPhone *string `json:"primary_contact_phone"`
	Notes               *string `json:"notes"`
}

func (r *CreateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of prospect, active, inactive",
		})
	}

	if r.PrimaryContactEmail != nil && !validator.IsValidEmail(*r.PrimaryContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "primary_contact_email",
			Message: "primary_contact_email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAccountRequest struct {
	ID                  string  `json:"-"`
	Name                *string `json:"name"`
	Industry            *string `json:"industry"`
	Status              *string `json:"status"`
	BillingAddressLine  *string `json:"billing_address_line"`
	BillingCity         *string `json:"billing_city"`
	BillingState        *string `json:"billing_state"`
	BillingPostalCode   *string `json:"billing_postal_code"`
	PrimaryContactName  *string `json:"primary_contact_name"`
	PrimaryContactEmail *string `json:"primary_contact_email"`
	PrimaryContactPhone *string `json:"primary_contact_phone"`
	Notes               *string `json:"notes"`
}

func (r *UpdateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "account id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of prospect, active, inactive",
		})
	}

	if r.PrimaryContactEmail != nil && !validator.IsValidEmail(*r.PrimaryContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "primary_contact_email",
			Message: "primary_contact_email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AccountResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Industry            *string `json:"industry,omitempty"`
	Status              string  `json:"status"`
	BillingAddressLine  *string `json:"billing_address_line,omitempty"`
	BillingCity         *string `json:"billing_city,omitempty"`
	BillingState        *string `json:"billing_state,omitempty"`
	BillingPostalCode   *string `json:"billing_postal_code,omitempty"`
	PrimaryContactName  *string `json:"primary_contact_name,omitempty"`
	PrimaryContactEmail *string `json:"primary_contact_email,omitempty"`
	PrimaryContactPhone *string `json:"primary_contact_phone,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type AccountFilter struct {
	Search *string `json:"search,omitempty"`
	Status *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ListAccountsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Accounts   []AccountResponse `json:"accounts"`
}
