package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

const userColumns = `id, email, password_hash, name, headline, avatar_url, locale, public_handle,
		refresh_token_hash, refresh_expires_at, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Headline, &u.AvatarURL, &u.Locale,
		&u.PublicHandle, &u.RefreshTokenHash, &u.RefreshExpiresAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *UserRepository) CreateWithProfile(ctx context.Context, u *entity.User) error {
	return mapErr(withTx(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO users (id, email, password_hash, name, public_handle, refresh_token_hash, refresh_expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at
		`, u.ID, u.Email, u.PasswordHash, u.Name, u.PublicHandle, u.RefreshTokenHash, u.RefreshExpiresAt)
		if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `INSERT INTO profiles (user_id) VALUES ($1)`, u.ID)
		return err
	}))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByHandle(ctx context.Context, handle string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE public_handle = $1`, handle))
}

func (r *UserRepository) HandleExists(ctx context.Context, handle string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE public_handle = $1)`, handle).Scan(&exists)
	return exists, mapErr(err)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, headline = $2, avatar_url = $3, locale = $4, public_handle = $5, updated_at = $6
		WHERE id = $7
	`, u.Name, u.Headline, u.AvatarURL, u.Locale, u.PublicHandle, u.UpdatedAt, u.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, refresh_token_hash = NULL, refresh_expires_at = NULL, updated_at = now()
		WHERE id = $1
	`, id, hash)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id string, hash *string, expiresAt *time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET refresh_token_hash = $2, refresh_expires_at = $3 WHERE id = $1
	`, id, hash, expiresAt)
	return mapErr(err)
}

func (r *UserRepository) RotateRefreshToken(ctx context.Context, id, oldHash, newHash string, expiresAt time.Time) (bool, error) {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET refresh_token_hash = $3, refresh_expires_at = $4
		WHERE id = $1 AND refresh_token_hash = $2
	`, id, oldHash, newHash, expiresAt)
	if err != nil {
		return false, mapErr(err)
	}
	return res.RowsAffected() == 1, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
