package entity

import (
	"time"
)

// User is the aggregate root for the credential/identity domain.
// PasswordHash is a bcrypt hash and RefreshTokenHash a SHA-256 hex digest;
// neither is ever serialized outward.
type User struct {
	ID           string
	Email        string
	PasswordHash *string
	Name         *string
	Headline     *string
	AvatarURL    *string
	Locale       *string
	PublicHandle string

	RefreshTokenHash *string
	RefreshExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPassword reports whether the account can log in with a local password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Session derives the explicit session state from the stored refresh token.
func (u *User) Session() SessionState {
	if u.RefreshTokenHash == nil || *u.RefreshTokenHash == "" {
		return SessionState{Kind: SessionAnonymous}
	}
	s := SessionState{Kind: SessionActive, TokenHash: *u.RefreshTokenHash}
	if u.RefreshExpiresAt != nil {
		s.ExpiresAt = *u.RefreshExpiresAt
	}
	return s
}

// UserView is the sanitized projection returned to clients.
type UserView struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         *string `json:"name"`
	PublicHandle string  `json:"public_handle"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, PublicHandle: u.PublicHandle}
}
