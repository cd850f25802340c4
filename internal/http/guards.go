package httpx

import (
	"net/http"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
)

// The guards below are the only place the HTTP layer makes routing
// decisions about authentication. Every destination comes from the domain
// redirect cascade, so the guest tree, the auth tree, and the root
// redirect can never disagree about where a visitor belongs.

// RootRedirect handles "/" by sending the visitor to wherever the
// redirect cascade says they belong.
func RootRedirect() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := MustVisitor(r.Context())
		http.Redirect(w, r, v.State.RedirectPath(), http.StatusSeeOther)
	})
}

// RequireGuest wraps a guest-only page. A signed-in or
// verification-pending visitor is bounced to their cascade destination
// instead of seeing login or registration screens again.
func RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := MustVisitor(r.Context())
		if v.State.User != nil {
			http.Redirect(w, r, v.State.RedirectPath(), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth wraps an authenticated page. Guests go to login,
// verification-pending visitors go to the verification screen, and a
// signed-in visitor of the wrong kind is sent to their own dashboard.
// With no roles given, any authenticated visitor passes.
func RequireAuth(next http.Handler, roles ...domainauth.Kind) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := MustVisitor(r.Context())
		if !v.State.IsAuthenticated() {
			http.Redirect(w, r, v.State.RedirectPath(), http.StatusSeeOther)
			return
		}
		if len(roles) > 0 && !v.State.HasRole(roles...) {
			http.Redirect(w, r, v.State.RedirectPath(), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireVerificationPending wraps the verification screen. It admits
// visitors mid-registration (pending user or stored registration data)
// and anyone arriving with override query parameters from a login that
// surfaced an unverified account. Fully signed-in visitors go to their
// dashboard.
func RequireVerificationPending(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := MustVisitor(r.Context())
		if v.State.IsAuthenticated() {
			http.Redirect(w, r, v.State.RedirectPath(), http.StatusSeeOther)
			return
		}
		if v.State.RequiresVerification() || v.State.RegistrationData != nil || hasVerifyOverride(r) {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, domainauth.RouteLogin, http.StatusSeeOther)
	})
}

// hasVerifyOverride reports whether the request carries the query
// parameters a login flow attaches when it discovers an unverified
// account (?email=...&message=...).
func hasVerifyOverride(r *http.Request) bool {
	q := r.URL.Query()
	return q.Get("email") != "" || q.Get("message") != ""
}
