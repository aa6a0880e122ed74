package entity

import "time"

// Resume is a titled, versioned document. Versions are newest first; list
// views carry only the latest one plus VersionCount.
type Resume struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Description  *string         `json:"description"`
	IsPublished  bool            `json:"is_published"`
	Versions     []ResumeVersion `json:"versions"`
	VersionCount int             `json:"version_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ResumeVersion struct {
	ID         string    `json:"id"`
	ResumeID   string    `json:"resume_id"`
	Content    string    `json:"content"`
	VersionTag *string   `json:"version_tag"`
	CreatedAt  time.Time `json:"created_at"`
}
