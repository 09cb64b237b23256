package contract

import (
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/schedule"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusEnded  Status = "ended"
)

var StatusValues = []string{
	string(StatusDraft),
	string(StatusActive),
	string(StatusPaused),
	string(StatusEnded),
}

// Contract is a service agreement for one facility. The embedded schedule
// fields are the raw recurrence rule; the normalizer turns them into a
// ServiceSchedule before any generation or window check.
type Contract struct {
	ID         string
	AccountID  string
	FacilityID string
	Status     Status

	ServiceFrequency string // weekly, biweekly, monthly
	ScheduleDays     []int  // ISO weekdays, 1=Monday..7=Sunday
	WindowStartMin   *int
	WindowEndMin     *int
	Timezone         *string

	// Exactly one of the two should be set; generation rejects contracts
	// carrying both.
	AssignedTeamID *string
	AssignedUserID *string

	BillingRate    *float64
	EstimatedHours *float64
	StartDate      time.Time
	EndDate        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined display fields
	AccountName  *string
	FacilityName *string
}

// RawSchedule exposes the contract's recurrence fields in the shape the
// normalizer consumes. Returns nil when the contract has no schedule data at
// all, leaving the frequency label as the only recurrence hint.
func (c *Contract) RawSchedule() *schedule.RawSchedule {
	if len(c.ScheduleDays) == 0 && c.WindowStartMin == nil && c.Timezone == nil {
		return nil
	}
	raw := &schedule.RawSchedule{
		Days:           c.ScheduleDays,
		WindowStartMin: c.WindowStartMin,
		WindowEndMin:   c.WindowEndMin,
	}
	if c.Timezone != nil {
		raw.Timezone = *c.Timezone
	}
	return raw
}
