package entities

import "time"

// Lead statuses move through the sales pipeline. Won, Lost and Disqualified
// are terminal: leads in those states never count as overdue follow-ups.
const (
	StatusNew          = "New"
	StatusContacted    = "Contacted"
	StatusQualified    = "Qualified"
	StatusWon          = "Won"
	StatusLost         = "Lost"
	StatusDisqualified = "Disqualified"
)

type Lead struct {
	ID                int        `json:"id"`
	TenantID          string     `json:"tenant_id"`
	CreatedBy         int        `json:"created_by"`
	AssignedTo        *int       `json:"assigned_to"`
	FullName          string     `json:"full_name"`
	Phone             string     `json:"phone"`
	Email             *string    `json:"email"`
	Source            *string    `json:"source"`
	InterestType      *string    `json:"interest_type"`
	Status            string     `json:"status"`
	BudgetMin         float64    `json:"budget_min"`
	BudgetMax         float64    `json:"budget_max"`
	PreferredLocation *string    `json:"preferred_location"`
	Notes             *string    `json:"notes"`
	NextFollowupAt    *time.Time `json:"next_followup_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Populated on list queries (joined from users) and on detail reads.
	AssignedName *string    `json:"assigned_name,omitempty"`
	Activities   []Activity `json:"activities,omitempty"`
}
