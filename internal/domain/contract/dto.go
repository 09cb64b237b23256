package contract

import (
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/validator"
)

type ContractResponse struct {
	ID               string   `json:"id"`
	AccountID        string   `json:"account_id"`
	AccountName      *string  `json:"account_name,omitempty"`
	FacilityID       string   `json:"facility_id"`
	FacilityName     *string  `json:"facility_name,omitempty"`
	Status           string   `json:"status"`
	ServiceFrequency string   `json:"service_frequency"`
	ScheduleDays     []int    `json:"schedule_days,omitempty"`
	WindowStartMin   *int     `json:"window_start_min,omitempty"`
	WindowEndMin     *int     `json:"window_end_min,omitempty"`
	Timezone         *string  `json:"timezone,omitempty"`
	AssignedTeamID   *string  `json:"assigned_team_id,omitempty"`
	AssignedUserID   *string  `json:"assigned_user_id,omitempty"`
	BillingRate      *float64 `json:"billing_rate,omitempty"`
	EstimatedHours   *float64 `json:"estimated_hours,omitempty"`
	StartDate        string   `json:"start_date"`
	EndDate          *string  `json:"end_date,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

type UpdateAssignmentRequest struct {
	ID             string  `json:"-"`
	AssignedTeamID *string `json:"assigned_team_id"`
	AssignedUserID *string `json:"assigned_user_id"`
}

func (r *UpdateAssignmentRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{
			Field:   "id",
			Message: "contract id is required",
		}}
	}
	return nil
}

type ContractFilter struct {
	AccountID  *string `json:"account_id,omitempty"`
	FacilityID *string `json:"facility_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ContractFilter) Validate() error {
	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of draft, active, paused, ended",
		}}
	}
	return nil
}

type ListContractsResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Contracts  []ContractResponse `json:"contracts"`
}
