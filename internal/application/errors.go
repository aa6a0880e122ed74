package application

import (
	"errors"
	"fmt"
)

var (
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")

	// Authentication failures are flattened to one client-facing message per operation.
	ErrEmailTaken         = fmt.Errorf("%w: user with this email already exists", ErrConflict)
	ErrHandleTaken        = fmt.Errorf("%w: public handle already taken", ErrConflict)
	ErrSlugTaken          = fmt.Errorf("%w: slug already taken", ErrConflict)
	ErrResumeNoVersions   = fmt.Errorf("%w: cannot publish resume without versions", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrRefreshMissing     = fmt.Errorf("%w: refresh token is missing", ErrUnauthorized)
	ErrInvalidRefresh     = fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)

	ErrUserNotFound        = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrAchievementNotFound = fmt.Errorf("%w: achievement not found", ErrNotFound)
	ErrProjectNotFound     = fmt.Errorf("%w: project not found", ErrNotFound)
	ErrMediaNotFound       = fmt.Errorf("%w: media not found", ErrNotFound)
	ErrResumeNotFound      = fmt.Errorf("%w: resume not found", ErrNotFound)

	ErrInvalidSlug       = errors.New("slug cannot be derived from title")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	ErrResetUnavailable  = errors.New("password reset unavailable")
	ErrStorageDisabled   = errors.New("object storage not configured")
	ErrHandleExhausted   = errors.New("public handle allocation exhausted")
)
