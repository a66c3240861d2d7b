package entities

import "time"

// Activity interaction types.
const (
	ActivityCall     = "call"
	ActivityWhatsApp = "whatsapp"
	ActivityEmail    = "email"
	ActivityMeeting  = "meeting"
	ActivityNote     = "note"
)

// Activity is an append-only log entry against a lead.
type Activity struct {
	ID        int       `json:"id"`
	TenantID  string    `json:"tenant_id"`
	LeadID    int       `json:"lead_id"`
	UserID    int       `json:"user_id"`
	Type      string    `json:"type"`
	Result    *string   `json:"result"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// Display name of the authoring user, joined on reads.
	UserName *string `json:"user_name,omitempty"`
}
