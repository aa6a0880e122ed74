package application

import (
	"context"
	"io"
	"time"
)

// ResetTokenStore keeps single-use password reset tickets keyed by token digest.
type ResetTokenStore interface {
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	// Take returns the user id and deletes the ticket; ok is false if absent or expired.
	Take(ctx context.Context, tokenHash string) (userID string, ok bool, err error)
}

// ResetNotice is what a notifier needs to deliver a reset link.
type ResetNotice struct {
	UserID    string
	Email     string
	Name      string
	Link      string
	ExpiresAt time.Time
	IP        string
	UserAgent string
}

type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, n ResetNotice) error
}

// ProfileDoc is the searchable projection of a public profile.
type ProfileDoc struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Headline     string `json:"headline"`
	PublicHandle string `json:"public_handle"`
	AvatarURL    string `json:"avatar_url"`
}

type ProfileIndexer interface {
	Index(ctx context.Context, doc ProfileDoc) error
	Search(ctx context.Context, q string, size int) ([]ProfileDoc, error)
}

type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	SignedPutURL(objectPath, contentType string) (string, error)
	SignedGetURL(objectPath string) (string, error)
}
