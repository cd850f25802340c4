package httpx

import (
	"net/http"
)

// The page endpoints return the view payload the single-page front end
// hydrates from. Each one sits behind a guard, so reaching a handler
// means the visitor belongs on that page.

// PageHandler serves a static page payload plus the session context.
func PageHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := MustVisitor(r.Context())
		WriteJSON(w, http.StatusOK, map[string]any{
			"page":        name,
			"user":        v.State.User,
			"redirect_to": v.State.RedirectPath(),
		})
	})
}

// VerifyAccountPage serves the verification screen payload. The contact
// and message come from the override query parameters when present,
// falling back to the stored registration response and the pending
// user's own contact details.
func VerifyAccountPage() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := MustVisitor(r.Context())

		contact := r.URL.Query().Get("email")
		message := r.URL.Query().Get("message")
		if contact == "" && v.State.User != nil {
			if v.State.User.Email != "" {
				contact = v.State.User.Email
			} else {
				contact = v.State.User.PhoneNumber
			}
		}
		if message == "" && v.State.RegistrationData != nil {
			message = v.State.RegistrationData.Message
		}

		WriteJSON(w, http.StatusOK, map[string]any{
			"page":              "verify-account",
			"contact":           contact,
			"message":           message,
			"registration_data": v.State.RegistrationData,
		})
	})
}
