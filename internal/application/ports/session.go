package ports

import (
	"context"
)

type Session struct {
	UserID        string
	Authenticated bool
}

// SessionStore resolves a bearer token into the caller's identity. An
// unknown or expired token yields a zero Session with Authenticated false,
// not an error.
type SessionStore interface {
	GetSession(ctx context.Context, token string) (Session, error)
}
