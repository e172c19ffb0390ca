package api

import "time"

// swagger:model api.UserResponse
type UserResponse struct {
	ID          int        `json:"id" example:"1"`
	Name        string     `json:"name" example:"Alice"`
	Email       string     `json:"email" example:"alice@example.com"`
	Role        string     `json:"role" example:"user"`
	CreatedAt   time.Time  `json:"created_at" example:"2025-05-01T15:04:05Z07:00"`
	UpdatedAt   time.Time  `json:"updated_at" example:"2025-05-01T15:04:05Z07:00"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
