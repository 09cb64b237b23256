package job

import (
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/validator"
)

// Actor identifies the authenticated caller for lifecycle operations. The
// role check happens at the HTTP layer; services only consume the boolean.
type Actor struct {
	UserID    string
	IsManager bool
}

type StartJobRequest struct {
	ID              string `json:"-"`
	Actor           Actor  `json:"-"`
	ManagerOverride bool   `json:"manager_override"`
	OverrideReason  string `json:"override_reason"`
}

func (r *StartJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "job id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CompleteJobRequest struct {
	ID              string   `json:"-"`
	Actor           Actor    `json:"-"`
	CompletionNotes *string  `json:"completion_notes"`
	ActualHours     *float64 `json:"actual_hours"`
}

func (r *CompleteJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "job id is required",
		})
	}

	if r.ActualHours != nil && *r.ActualHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "actual_hours",
			Message: "actual_hours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CancelJobRequest struct {
	ID     string  `json:"-"`
	Actor  Actor   `json:"-"`
	Reason *string `json:"reason"`
}

func (r *CancelJobRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{
			Field:   "id",
			Message: "job id is required",
		}}
	}
	return nil
}

type AssignJobRequest struct {
	ID             string  `json:"-"`
	Actor          Actor   `json:"-"`
	AssignedTeamID *string `json:"assigned_team_id"`
	AssignedUserID *string `json:"assigned_user_id"`
}

func (r *AssignJobRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{
			Field:   "id",
			Message: "job id is required",
		}}
	}
	return nil
}

type GenerateJobsRequest struct {
	ContractID string `json:"-"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
}

func (r *GenerateJobsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ContractID) {
		errs = append(errs, validator.ValidationError{
			Field:   "contract_id",
			Message: "contract_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type JobResponse struct {
	ID                 string   `json:"id"`
	JobNumber          string   `json:"job_number"`
	ContractID         string   `json:"contract_id"`
	FacilityID         string   `json:"facility_id"`
	AccountID          string   `json:"account_id"`
	FacilityName       *string  `json:"facility_name,omitempty"`
	AccountName        *string  `json:"account_name,omitempty"`
	AssignedTeamID     *string  `json:"assigned_team_id,omitempty"`
	AssignedUserID     *string  `json:"assigned_user_id,omitempty"`
	JobType            string   `json:"job_type"`
	Status             string   `json:"status"`
	ScheduledDate      string   `json:"scheduled_date"`
	ScheduledStartTime string   `json:"scheduled_start_time"`
	ScheduledEndTime   *string  `json:"scheduled_end_time,omitempty"`
	EstimatedHours     *float64 `json:"estimated_hours,omitempty"`
	ActualHours        *float64 `json:"actual_hours,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
	CompletionNotes    *string  `json:"completion_notes,omitempty"`
	StartedAt          *string  `json:"started_at,omitempty"`
	CompletedAt        *string  `json:"completed_at,omitempty"`
	CanceledAt         *string  `json:"canceled_at,omitempty"`
	CancelReason       *string  `json:"cancel_reason,omitempty"`
	OverrideReason     *string  `json:"override_reason,omitempty"`
	OverrideBy         *string  `json:"override_by,omitempty"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

// ToJobResponse converts a Job entity to its API shape.
func ToJobResponse(j Job) JobResponse {
	return JobResponse{
		ID:                 j.ID,
		JobNumber:          j.JobNumber,
		ContractID:         j.ContractID,
		FacilityID:         j.FacilityID,
		AccountID:          j.AccountID,
		FacilityName:       j.FacilityName,
		AccountName:        j.AccountName,
		AssignedTeamID:     j.AssignedTeamID,
		AssignedUserID:     j.AssignedUserID,
		JobType:            string(j.JobType),
		Status:             string(j.Status),
		ScheduledDate:      j.ScheduledDate.Format("2006-01-02"),
		ScheduledStartTime: j.ScheduledStartTime.Format(timeFormat),
		ScheduledEndTime:   formatTimePtr(j.ScheduledEndTime),
		EstimatedHours:     j.EstimatedHours,
		ActualHours:        j.ActualHours,
		Notes:              j.Notes,
		CompletionNotes:    j.CompletionNotes,
		StartedAt:          formatTimePtr(j.StartedAt),
		CompletedAt:        formatTimePtr(j.CompletedAt),
		CanceledAt:         formatTimePtr(j.CanceledAt),
		CancelReason:       j.CancelReason,
		OverrideReason:     j.OverrideReason,
		OverrideBy:         j.OverrideBy,
		CreatedAt:          j.CreatedAt.Format(timeFormat),
		UpdatedAt:          j.UpdatedAt.Format(timeFormat),
	}
}

const timeFormat = "2006-01-02 15:04:05"

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(timeFormat)
	return &formatted
}

type GenerationResponse struct {
	Created         []JobResponse `json:"created"`
	CreatedCount    int           `json:"created_count"`
	SkippedExisting int           `json:"skipped_existing"`
}

type JobFilter struct {
	ContractID     *string `json:"contract_id,omitempty"`
	FacilityID     *string `json:"facility_id,omitempty"`
	AccountID      *string `json:"account_id,omitempty"`
	AssignedUserID *string `json:"assigned_user_id,omitempty"`
	AssignedTeamID *string `json:"assigned_team_id,omitempty"`
	Status         *string `json:"status,omitempty"`
	StartDate      *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate        *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // scheduled_date, job_number, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *JobFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of scheduled, in_progress, completed, canceled, missed",
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListJobsResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Jobs       []JobResponse `json:"jobs"`
}
