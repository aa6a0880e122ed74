package repository

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

type AchievementRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Achievement, error)
	GetByID(ctx context.Context, id string) (*entity.Achievement, error)
	Create(ctx context.Context, a *entity.Achievement) error
	Update(ctx context.Context, a *entity.Achievement) error
	Delete(ctx context.Context, id string) error
}
