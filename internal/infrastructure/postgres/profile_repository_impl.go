package postgres

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

type ProfileRepository struct {
	db DB
}

func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	p := &entity.Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, bio, visible, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.Bio, &p.Visible, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *entity.Profile) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, bio, visible)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET bio = EXCLUDED.bio, visible = EXCLUDED.visible, updated_at = now()
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Bio, p.Visible)
	return mapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
