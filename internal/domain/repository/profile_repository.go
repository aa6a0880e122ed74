package repository

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	// Upsert creates the profile when missing, otherwise overwrites bio and visibility.
	Upsert(ctx context.Context, p *entity.Profile) error
}
