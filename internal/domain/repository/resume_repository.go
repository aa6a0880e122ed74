package repository

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

type ResumeRepository interface {
	// ListByUser returns resumes by most recent update, each with its latest
	// version and the total version count.
	ListByUser(ctx context.Context, userID string, publishedOnly bool) ([]entity.Resume, error)
	// GetByID loads the resume with every version, newest first.
	GetByID(ctx context.Context, id string) (*entity.Resume, error)
	// GetPublishedBySlug loads a published resume with its latest version.
	GetPublishedBySlug(ctx context.Context, slug string) (*entity.Resume, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, r *entity.Resume) error
	Update(ctx context.Context, r *entity.Resume) error
	Delete(ctx context.Context, id string) error
	AddVersion(ctx context.Context, v *entity.ResumeVersion) error
}
