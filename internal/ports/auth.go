package ports

// Package ports defines interfaces (hexagonal ports) for session-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/session.

import (
	"context"
	"time"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
)

// ErrSessionNotFound is returned by SessionStore.Get when no snapshot
// exists for the ID.
type sessionNotFoundError struct{}

func (sessionNotFoundError) Error() string { return "session not found" }

var ErrSessionNotFound error = sessionNotFoundError{}

// SessionStore persists and retrieves the durable subset of a visitor's
// session state, keyed by session ID.
type SessionStore interface {
	Save(ctx context.Context, id string, snap domainauth.Snapshot) error
	Get(ctx context.Context, id string) (domainauth.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// TokenVault is the legacy per-kind token side channel. Login adapters
// write into it; Logout is the single place that clears every key.
type TokenVault interface {
	// StoreToken stores the bearer token for a user kind. A zero
	// expiresAt means the kind does not track expiry (admin).
	StoreToken(ctx context.Context, sessionID string, kind domainauth.Kind, token string, expiresAt time.Time) error

	// Token returns the stored token for a kind, or "" when absent.
	Token(ctx context.Context, sessionID string, kind domainauth.Kind) (string, error)

	// PurgeAll removes every known vault key for the visitor, including
	// the generic access/refresh keys and the admin user record.
	PurgeAll(ctx context.Context, sessionID string) error
}

// ProfileFetcher retrieves a fresh profile payload by slug for the
// background refresh poller.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, kind domainauth.Kind, slug string) (map[string]any, error)
}
