package postgres

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

type AchievementRepository struct {
	db DB
}

func NewAchievementRepository(db DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) ListByUser(ctx context.Context, userID string) ([]entity.Achievement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, body, date, link, created_at, updated_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Achievement, 0)
	for rows.Next() {
		var a entity.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Body, &a.Date, &a.Link, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AchievementRepository) GetByID(ctx context.Context, id string) (*entity.Achievement, error) {
	a := &entity.Achievement{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, title, body, date, link, created_at, updated_at
		FROM achievements
		WHERE id = $1
	`, id).Scan(&a.ID, &a.UserID, &a.Title, &a.Body, &a.Date, &a.Link, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *AchievementRepository) Create(ctx context.Context, a *entity.Achievement) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO achievements (id, user_id, title, body, date, link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, a.ID, a.UserID, a.Title, a.Body, a.Date, a.Link)
	return mapErr(row.Scan(&a.CreatedAt, &a.UpdatedAt))
}

func (r *AchievementRepository) Update(ctx context.Context, a *entity.Achievement) error {
	row := r.db.QueryRow(ctx, `
		UPDATE achievements
		SET title = $2, body = $3, date = $4, link = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, a.ID, a.Title, a.Body, a.Date, a.Link)
	return mapErr(row.Scan(&a.UpdatedAt))
}

func (r *AchievementRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AchievementRepository = (*AchievementRepository)(nil)
