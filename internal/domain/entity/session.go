package entity

import "time"

type SessionKind int

const (
	SessionAnonymous SessionKind = iota
	SessionActive
)

func (k SessionKind) String() string {
	switch k {
	case SessionActive:
		return "active"
	default:
		return "anonymous"
	}
}

// SessionState is the per-user authentication state. At most one refresh
// token is active at a time; TokenHash identifies it.
type SessionState struct {
	Kind      SessionKind
	TokenHash string
	ExpiresAt time.Time
}

// Active reports whether a refresh token is stored and not yet expired at now.
func (s SessionState) Active(now time.Time) bool {
	if s.Kind != SessionActive {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}
