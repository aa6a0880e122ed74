package entity

import "time"

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Media kinds accepted for project attachments.
const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaDocument = "document"
)

type Project struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	ShortDesc   *string        `json:"short_desc"`
	Description *string        `json:"description"`
	TechStack   []string       `json:"tech_stack"`
	Visibility  string         `json:"visibility"`
	Media       []ProjectMedia `json:"media"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ProjectMedia struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	AltText   *string   `json:"alt_text"`
	CreatedAt time.Time `json:"created_at"`
}
