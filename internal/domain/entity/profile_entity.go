package entity

import "time"

// Profile holds the public-facing bio of a user; one per user, created empty at signup.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Bio       *string   `json:"bio"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
