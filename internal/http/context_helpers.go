package httpx

import (
	"context"

	"github.com/rentnest/rentnest-web/internal/session"
)

// visitorKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type visitorKey struct{}

// VisitorSession pairs the cookie-scoped session ID with the loaded state.
// The WithSession middleware puts one on every request context.
type VisitorSession struct {
	ID    string
	State *session.State
}

// SetVisitorInContext returns a child context that carries the given visitor.
// If visitor is nil, the original ctx is returned unchanged.
func SetVisitorInContext(ctx context.Context, visitor *VisitorSession) context.Context {
	if visitor == nil {
		return ctx
	}
	return context.WithValue(ctx, visitorKey{}, visitor)
}

// VisitorFromContext returns the visitor session from context and a boolean
// indicating presence.
func VisitorFromContext(ctx context.Context) (*VisitorSession, bool) {
	if v, ok := ctx.Value(visitorKey{}).(*VisitorSession); ok && v != nil {
		return v, true
	}
	return nil, false
}

// MustVisitor returns the visitor session or an empty guest visitor when the
// middleware did not run. Handlers downstream of WithSession can rely on a
// non-nil State.
func MustVisitor(ctx context.Context) *VisitorSession {
	if v, ok := VisitorFromContext(ctx); ok {
		return v
	}
	return &VisitorSession{State: &session.State{}}
}
