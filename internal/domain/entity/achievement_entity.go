package entity

import "time"

type Achievement struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Body      *string    `json:"body"`
	Date      *time.Time `json:"date"`
	Link      *string    `json:"link"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
