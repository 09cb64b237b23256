package team

import "time"

// Team is a subcontractor crew that jobs can be assigned to as a unit.
type Team struct {
	ID       string
	Name     string
	LeadName *string
	Phone    *string
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TeamResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	LeadName *string `json:"lead_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Active   bool    `json:"active"`
}
