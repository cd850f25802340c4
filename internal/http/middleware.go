package httpx

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/rentnest/rentnest-web/internal/session"
)

// sessionCookieName is the browser cookie that carries the session ID.
const sessionCookieName = "sid"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolverOptions configures WithSession.
type SessionResolverOptions struct {
	Sessions     *session.Manager
	CookieDomain string
	Secure       bool
	Logger       *slog.Logger

	// Refresh, when set, resumes profile polling for sessions that come
	// back from the store still pending.
	Refresh RefreshTracker
}

// RefreshTracker is the slice of the refresh runner the HTTP layer needs.
type RefreshTracker interface {
	Track(ctx context.Context, sessionID string, st *session.State)
	Stop(sessionID string)
}

// WithSession returns a middleware that resolves the session cookie, loads
// the session state, and puts a VisitorSession on the request context. A
// missing cookie gets a fresh UUID; a store outage degrades to a guest
// state rather than failing the request.
func WithSession(opts SessionResolverOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionIDFromRequest(r)
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    id,
					Path:     "/",
					Domain:   opts.CookieDomain,
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			st, err := opts.Sessions.Initialize(r.Context(), id)
			if err != nil {
				logger.WarnContext(r.Context(), "session load failed, serving as guest", "error", err)
				st = &session.State{}
			} else if opts.Refresh != nil {
				opts.Refresh.Track(r.Context(), id, st)
			}

			ctx := SetVisitorInContext(r.Context(), &VisitorSession{ID: id, State: st})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionIDFromRequest returns the session cookie value when it parses as a
// UUID, otherwise "". Garbage cookies get a fresh session instead of
// becoming store keys.
func sessionIDFromRequest(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rateEntry
	limit    rate.Limit
	burst    int
}

type rateEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	rateLimiterMaxEntries = 1024
	rateLimiterIdleTTL    = 10 * time.Minute
)

func newIPRateLimiter(perMinute, burst int) *ipRateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 10
	}
	return &ipRateLimiter{
		visitors: make(map[string]*rateEntry),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if len(l.visitors) > rateLimiterMaxEntries {
		for k, e := range l.visitors {
			if now.Sub(e.lastSeen) > rateLimiterIdleTTL {
				delete(l.visitors, k)
			}
		}
	}

	e, ok := l.visitors[ip]
	if !ok {
		e = &rateEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = e
	}
	e.lastSeen = now
	return e.limiter.Allow()
}

// RateLimit returns a middleware that throttles requests per client IP.
// Applied to the credential endpoints so a stolen password list cannot be
// replayed through us at line rate.
func RateLimit(perMinute, burst int) func(http.Handler) http.Handler {
	limiter := newIPRateLimiter(perMinute, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r)) {
				WriteError(w, ErrorParams{
					Code:    http.StatusTooManyRequests,
					ErrCode: "rate_limited",
					Message: "Too many requests. Please wait a moment and try again.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
