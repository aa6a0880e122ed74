package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint (email, handle) is violated.
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the credential store operations.
type UserRepository interface {
	// CreateWithProfile inserts the user and an empty profile in one transaction.
	CreateWithProfile(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByHandle(ctx context.Context, handle string) (*entity.User, error)
	HandleExists(ctx context.Context, handle string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error

	// SetRefreshToken overwrites the stored refresh token hash unconditionally.
	// A nil hash clears the session.
	SetRefreshToken(ctx context.Context, id string, hash *string, expiresAt *time.Time) error
	// RotateRefreshToken replaces oldHash with newHash only if oldHash is still current.
	// It reports false when another request rotated or cleared the token first.
	RotateRefreshToken(ctx context.Context, id, oldHash, newHash string, expiresAt time.Time) (bool, error)
}
