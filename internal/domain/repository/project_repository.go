package repository

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

type ProjectRepository interface {
	// ListByUser returns projects newest first with their media attached.
	ListByUser(ctx context.Context, userID string, publicOnly bool) ([]entity.Project, error)
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id string) error

	AddMedia(ctx context.Context, m *entity.ProjectMedia) error
	GetMedia(ctx context.Context, id string) (*entity.ProjectMedia, error)
	DeleteMedia(ctx context.Context, id string) error
}
