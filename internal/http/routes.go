package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	"github.com/rentnest/rentnest-web/internal/session"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions *session.Manager
	API      CredentialAPI
	Catalog  CatalogService
	// Optional: refresh poller for pending profiles.
	Refresh RefreshTracker

	CookieDomain  string
	SecureCookies bool

	// Credential endpoint throttling, per client IP.
	AuthRatePerMinute int
	AuthRateBurst     int

	IsDev  bool
	Logger *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router: guarded page routes,
// rate-limited credential endpoints, and the guest browsing API, all
// behind the session-resolving middleware.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		API:      services.API,
		Sessions: services.Sessions,
		Refresh:  services.Refresh,
		Logger:   logger,
	}
	catalogHandlers := &CatalogHandlers{Svc: services.Catalog, Logger: logger}

	registerPageRoutes(mux)
	registerAuthRoutes(mux, authHandlers, services.AuthRatePerMinute, services.AuthRateBurst)
	registerCatalogRoutes(mux, catalogHandlers)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = WithSession(SessionResolverOptions{
		Sessions:     services.Sessions,
		CookieDomain: services.CookieDomain,
		Secure:       services.SecureCookies && !services.IsDev,
		Logger:       logger,
		Refresh:      services.Refresh,
	})(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// registerPageRoutes wires the guarded page tree. Guest pages bounce
// signed-in visitors to their cascade destination; dashboards bounce
// everyone else the other way.
func registerPageRoutes(mux *http.ServeMux) {
	mux.Handle("GET /{$}", RootRedirect())

	guestPages := []struct {
		route string
		page  string
	}{
		{domainauth.RouteHome, "home"},
		{domainauth.RouteLogin, "login"},
		{"/register", "register"},
		{"/landlord/login", "landlord-login"},
		{"/landlord/register", "landlord-register"},
		{"/forgot-password", "forgot-password"},
		{"/landlord/forgot-password", "landlord-forgot-password"},
		{"/reset-password", "reset-password"},
	}
	for _, p := range guestPages {
		mux.Handle("GET "+p.route, RequireGuest(PageHandler(p.page)))
	}

	mux.Handle("GET "+domainauth.RouteVerifyAccount, RequireVerificationPending(VerifyAccountPage()))

	mux.Handle("GET "+domainauth.RouteDashboard, RequireAuth(PageHandler("dashboard"), domainauth.KindRenter))
	mux.Handle("GET "+domainauth.RouteLandlordDashboard, RequireAuth(PageHandler("landlord-dashboard"), domainauth.KindLandlord))
	mux.Handle("GET "+domainauth.RouteAdminDashboard, RequireAuth(PageHandler("admin-dashboard"), domainauth.KindAdmin))
}

// registerAuthRoutes wires the credential endpoints. Everything that
// carries credentials or triggers an OTP send sits behind the per-IP
// rate limit; logout and the session view do not.
func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, perMinute, burst int) {
	limited := RateLimit(perMinute, burst)

	credential := map[string]http.HandlerFunc{
		"POST /api/auth/login":                    h.RenterLogin,
		"POST /api/auth/register":                 h.RenterRegister,
		"POST /api/auth/forgot-password":          h.RenterForgotPassword,
		"POST /api/auth/reset-password":           h.ResetPassword,
		"POST /api/auth/landlord/login":           h.LandlordLogin,
		"POST /api/auth/landlord/register":        h.LandlordRegister,
		"POST /api/auth/landlord/forgot-password": h.LandlordForgotPassword,
		"POST /api/auth/verify-otp":               h.VerifyAccount,
		"POST /api/auth/resend-otp":               h.ResendOTP,
	}
	for pattern, handler := range credential {
		mux.Handle(pattern, limited(handler))
	}

	mux.Handle("POST /api/auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /logout", http.HandlerFunc(h.LogoutRedirect))
	mux.Handle("GET /api/session", http.HandlerFunc(h.Session))
}

func registerCatalogRoutes(mux *http.ServeMux, h *CatalogHandlers) {
	mux.Handle("GET /api/categories", http.HandlerFunc(h.Categories))
	mux.Handle("GET /api/properties", http.HandlerFunc(h.Properties))
}
