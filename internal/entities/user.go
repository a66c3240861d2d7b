package entities

import "time"

type Tenant struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
}

type User struct {
	ID           int       `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`   // "admin" or "employee"
	Status       string    `json:"status"` // account enabled/disabled
	CreatedAt    time.Time `json:"created_at"`
}
