// Package refresh provides the background profile refresh poller. While
// a session's account update or KYC verification is pending, the runner
// re-fetches the profile on a fixed period and folds the fresh payload
// into the session. Polling stops the moment the pending predicate
// flips, the visitor logs out, or the runner shuts down.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rentnest/rentnest-web/internal/observability/statsd"
	"github.com/rentnest/rentnest-web/internal/ports"
	"github.com/rentnest/rentnest-web/internal/session"
)

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Sessions *session.Manager
	Profiles ports.ProfileFetcher
	Interval time.Duration
	Timeout  time.Duration

	// Optional dependency injection for testing/decoupling
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// Runner owns one polling goroutine per pending session, keyed by
// session ID. Safe for concurrent use.
type Runner struct {
	sessions *session.Manager
	profiles ports.ProfileFetcher
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	metrics  statsd.Sink

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// NewRunner creates a refresh runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if opts.Profiles == nil {
		return nil, errors.New("profile fetcher is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := opts.Timeout
	if timeout <= 0 || timeout >= interval {
		timeout = interval / 2
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		sessions: opts.Sessions,
		profiles: opts.Profiles,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		metrics:  statsd.OrNop(opts.Metrics),
		cancels:  make(map[string]context.CancelFunc),
	}, nil
}

// Track starts polling for the session if its user is pending and no
// poller is already running. Idempotent.
func (r *Runner) Track(ctx context.Context, sessionID string, st *session.State) {
	if sessionID == "" || st == nil || !st.User.RefreshPending() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, running := r.cancels[sessionID]; running {
		return
	}

	pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancels[sessionID] = cancel
	r.metrics.Count("refresh.tracked", 1, nil)
	go r.poll(pollCtx, sessionID)
}

// Stop cancels the poller for one session, if any. Called on logout.
func (r *Runner) Stop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cancel, ok := r.cancels[sessionID]; ok {
		cancel()
		delete(r.cancels, sessionID)
	}
}

// StopAll cancels every poller. Called on shutdown.
func (r *Runner) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cancel := range r.cancels {
		cancel()
		delete(r.cancels, id)
	}
}

func (r *Runner) untrack(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cancel, ok := r.cancels[sessionID]; ok {
		cancel()
		delete(r.cancels, sessionID)
	}
}

// poll ticks until the pending predicate flips or the context ends.
// Ticks run sequentially per session, so a slow response delays the next
// tick instead of overlapping it.
func (r *Runner) poll(ctx context.Context, sessionID string) {
	defer r.untrack(sessionID)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := r.tick(ctx, sessionID); done {
				return
			}
		}
	}
}

// tick runs one refresh cycle and reports whether polling should stop.
func (r *Runner) tick(ctx context.Context, sessionID string) bool {
	st, err := r.sessions.Initialize(ctx, sessionID)
	if err != nil {
		r.logger.WarnContext(ctx, "refresh poll: load session failed", "session_id", sessionID, "error", err)
		return false
	}
	if !st.User.RefreshPending() {
		return true
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	payload, err := r.profiles.FetchProfile(fetchCtx, st.User.UserType, st.User.Slug())
	if err != nil {
		// Transient fetch failures keep the poller alive; the pending
		// state has not changed.
		r.logger.WarnContext(ctx, "refresh poll: profile fetch failed", "session_id", sessionID, "error", err)
		r.metrics.Count("refresh.fetch_failure", 1, nil)
		return false
	}

	if err := r.sessions.UpdateUser(ctx, sessionID, st, payload); err != nil {
		r.logger.ErrorContext(ctx, "refresh poll: session update failed", "session_id", sessionID, "error", err)
		return false
	}
	r.metrics.Count("refresh.applied", 1, nil)

	return !st.User.RefreshPending()
}
