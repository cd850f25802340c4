package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	"github.com/rentnest/rentnest-web/internal/observability/statsd"
	"github.com/rentnest/rentnest-web/internal/ports"
)

// Store-level error messages surfaced when the API response is missing
// the expected user payload. These indicate contract drift on the remote
// side and are logged at error severity.
const (
	MsgInvalidLoginResponse        = "Invalid login response"
	MsgInvalidRegistrationResponse = "Invalid registration response"
)

// ManagerOptions groups dependencies for Manager.
type ManagerOptions struct {
	Store ports.SessionStore
	Vault ports.TokenVault

	// Optional dependency injection for testing/decoupling
	Evaluator PayloadEvaluator
	Logger    *slog.Logger
	Metrics   statsd.Sink
}

// Manager owns session state transitions and their persistence. Every
// mutation commits the durable subset before returning, so a guard that
// runs after a mutation always observes the new state.
type Manager struct {
	store   ports.SessionStore
	vault   ports.TokenVault
	eval    PayloadEvaluator
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewManager constructs a Manager.
func NewManager(opts ManagerOptions) *Manager {
	eval := opts.Evaluator
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:   opts.Store,
		vault:   opts.Vault,
		eval:    eval,
		logger:  logger,
		metrics: statsd.OrNop(opts.Metrics),
	}
}

// Initialize rehydrates the visitor's session from the store and resets
// the transient flags to the baseline. Missing sessions yield a fresh
// empty state. The rehydrated token is trusted as-is; staleness surfaces
// on the next authenticated API call, not here.
func (m *Manager) Initialize(ctx context.Context, id string) (*State, error) {
	st := &State{}
	snap, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return st, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	st.User = snap.User
	st.RegistrationData = snap.RegistrationData
	st.IsLoading = false
	st.Err = ""
	return st, nil
}

// StartLogin marks a login attempt in flight and clears the last error.
// Idempotent; transient flags are never persisted.
func (m *Manager) StartLogin(st *State) {
	st.IsLoading = true
	st.Err = ""
}

// StartRegistration marks a registration attempt in flight and clears
// the last error. Idempotent.
func (m *Manager) StartRegistration(st *State) {
	st.IsRegistering = true
	st.Err = ""
}

// FinishLogin ingests a successful login response payload. The user is
// replaced wholesale; a missing payload degrades to an error message and
// leaves the current user untouched.
func (m *Manager) FinishLogin(ctx context.Context, id string, st *State, payload map[string]any) error {
	st.IsLoading = false

	raw, ok := extractLoginUser(m.eval, payload)
	if !ok {
		st.Err = MsgInvalidLoginResponse
		m.logger.ErrorContext(ctx, "login response missing user payload", "session_id", id)
		m.metrics.Count("session.login.invalid_response", 1, nil)
		return nil
	}

	user, err := buildUser(raw, true)
	if err != nil {
		st.Err = MsgInvalidLoginResponse
		m.logger.ErrorContext(ctx, "login payload failed to decode", "session_id", id, "error", err)
		m.metrics.Count("session.login.invalid_response", 1, nil)
		return nil
	}

	st.User = user
	st.Err = ""
	m.metrics.Count("session.login.success", 1, map[string]string{"kind": string(user.UserType)})
	return m.commit(ctx, id, st)
}

// LoginError records a failed login attempt. The current user, if any,
// is untouched.
func (m *Manager) LoginError(st *State, message string) {
	st.Err = message
	st.IsLoading = false
	m.metrics.Count("session.login.failure", 1, nil)
}

// FinishRegistration ingests a successful registration response. The
// payload only ever uses the nested shape, and the kind is derived from
// the business-field heuristic; registration never produces admins.
func (m *Manager) FinishRegistration(ctx context.Context, id string, st *State, payload map[string]any, message, reason string) error {
	st.IsRegistering = false

	raw, ok := extractRegistrationUser(m.eval, payload)
	if !ok {
		st.Err = MsgInvalidRegistrationResponse
		m.logger.ErrorContext(ctx, "registration response missing user payload", "session_id", id)
		m.metrics.Count("session.registration.invalid_response", 1, nil)
		return nil
	}

	user, err := buildUser(raw, false)
	if err != nil {
		st.Err = MsgInvalidRegistrationResponse
		m.logger.ErrorContext(ctx, "registration payload failed to decode", "session_id", id, "error", err)
		m.metrics.Count("session.registration.invalid_response", 1, nil)
		return nil
	}

	st.User = user
	st.RegistrationData = &domainauth.RegistrationMeta{
		Message:    message,
		Reason:     reason,
		ReceivedAt: time.Now().UTC(),
	}
	st.Err = ""
	m.metrics.Count("session.registration.success", 1, map[string]string{"kind": string(user.UserType)})
	return m.commit(ctx, id, st)
}

// RegistrationError records a failed registration attempt.
func (m *Manager) RegistrationError(st *State, message string) {
	st.Err = message
	st.IsRegistering = false
	m.metrics.Count("session.registration.failure", 1, nil)
}

// Logout clears the session and purges every known token-vault key for
// the visitor, regardless of which user kind was active. The purge is
// unconditional so no stale token survives, however the user signed in.
func (m *Manager) Logout(ctx context.Context, id string, st *State) error {
	st.User = nil
	st.RegistrationData = nil
	st.Err = ""
	st.IsLoading = false
	st.IsRegistering = false

	if err := m.vault.PurgeAll(ctx, id); err != nil {
		return fmt.Errorf("purge token vault: %w", err)
	}
	m.metrics.Count("session.logout", 1, nil)
	return m.commit(ctx, id, st)
}

// UpdateUser shallow-merges a partial payload into the current user.
// No-op when logged out. Used by the background profile refresh.
func (m *Manager) UpdateUser(ctx context.Context, id string, st *State, partial map[string]any) error {
	if st.User == nil {
		return nil
	}
	merged, err := st.User.Merge(partial)
	if err != nil {
		return fmt.Errorf("merge user update: %w", err)
	}
	st.User = merged
	return m.commit(ctx, id, st)
}

// MarkAsVerified forces the verified flag on the current user, if any.
func (m *Manager) MarkAsVerified(ctx context.Context, id string, st *State) error {
	if st.User == nil {
		return nil
	}
	st.User.IsVerified = domainauth.FlagOn
	return m.commit(ctx, id, st)
}

// CompleteVerification promotes the verified flag (defaulting it on when
// the payload omits it) and merges only the fields the payload actually
// carries. Absent fields never overwrite existing values.
func (m *Manager) CompleteVerification(ctx context.Context, id string, st *State, payload map[string]any) error {
	if st.User == nil {
		return nil
	}

	partial := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		partial[k] = v
	}
	if _, ok := partial["is_verified"]; !ok {
		partial["is_verified"] = 1
	}

	merged, err := st.User.Merge(partial)
	if err != nil {
		return fmt.Errorf("merge verification payload: %w", err)
	}
	st.User = merged
	m.metrics.Count("session.verification.complete", 1, nil)
	return m.commit(ctx, id, st)
}

// commit persists the durable subset of the state. Mutations call it
// synchronously so guard re-evaluation always reads committed state.
func (m *Manager) commit(ctx context.Context, id string, st *State) error {
	if err := m.store.Save(ctx, id, st.Snapshot()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
