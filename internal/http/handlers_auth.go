package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	"github.com/rentnest/rentnest-web/internal/marketapi"
	"github.com/rentnest/rentnest-web/internal/media"
	"github.com/rentnest/rentnest-web/internal/session"
)

// CredentialAPI is the slice of the marketplace client the auth handlers
// call. Satisfied by *marketapi.Client; narrowed so tests can stub it.
type CredentialAPI interface {
	RenterLogin(ctx context.Context, in marketapi.RenterLoginInput) marketapi.Result
	RenterRegister(ctx context.Context, in marketapi.RenterRegisterInput) marketapi.Result
	RenterForgotPassword(ctx context.Context, in marketapi.RenterForgotPasswordInput) marketapi.Result
	RenterResetPassword(ctx context.Context, in marketapi.RenterResetPasswordInput) marketapi.Result
	LandlordLogin(ctx context.Context, in marketapi.LandlordLoginInput) marketapi.Result
	LandlordRegister(ctx context.Context, in marketapi.LandlordRegisterInput) marketapi.Result
	LandlordForgotPassword(ctx context.Context, in marketapi.LandlordForgotPasswordInput) marketapi.Result
	VerifyAccount(ctx context.Context, in marketapi.VerifyAccountInput) marketapi.Result
	ResendOTP(ctx context.Context, in marketapi.ResendOTPInput) marketapi.Result
}

// AuthHandlers serves the credential endpoints: login, registration,
// password recovery, OTP verification, and logout. Every response is a
// JSON envelope with success, message, and the cascade destination the
// front end should navigate to.
type AuthHandlers struct {
	API      CredentialAPI
	Sessions *session.Manager
	Refresh  RefreshTracker
	Logger   *slog.Logger
}

// maxRegisterFormBytes bounds multipart registration bodies: the image
// ceiling plus headroom for the text fields.
const maxRegisterFormBytes = media.MaxImageBytes + (1 << 20)

// authResponse is the JSON envelope for credential endpoints.
type authResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// statusForFailure maps a failed adapter Result to an HTTP status.
// Login endpoints report business rejections as 401; everything else
// uses 400 so form errors stay client errors.
func statusForFailure(res marketapi.Result, loginFlow bool) int {
	switch res.ErrCode {
	case marketapi.ErrCodeValidation:
		return http.StatusBadRequest
	case marketapi.ErrCodeAPI:
		if loginFlow {
			return http.StatusUnauthorized
		}
		return http.StatusBadRequest
	case marketapi.ErrCodeHTTP:
		return http.StatusBadGateway
	case marketapi.ErrCodeNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeFailure(w http.ResponseWriter, res marketapi.Result, loginFlow bool) {
	WriteError(w, ErrorParams{
		Code:    statusForFailure(res, loginFlow),
		ErrCode: res.ErrCode,
		Message: res.Message,
	})
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// finishLogin folds a successful login Result into the session and writes
// the response. Shared by the renter and landlord login handlers.
func (h *AuthHandlers) finishLogin(w http.ResponseWriter, r *http.Request, v *VisitorSession, res marketapi.Result, identifier string) {
	ctx := r.Context()
	if err := h.Sessions.FinishLogin(ctx, v.ID, v.State, res.Data); err != nil {
		h.logger().ErrorContext(ctx, "login commit failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_error", Message: "Could not save your session. Please try again."})
		return
	}
	if v.State.User == nil {
		// The server said success but the payload had no recognizable
		// user record. The session keeps the error message.
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "invalid_response", Message: v.State.Err})
		return
	}

	redirect := v.State.RedirectPath()
	if v.State.RequiresVerification() {
		redirect = verifyRedirectURL(identifier, res.Message)
	} else if h.Refresh != nil {
		h.Refresh.Track(ctx, v.ID, v.State)
	}

	WriteJSON(w, http.StatusOK, authResponse{Success: true, Message: res.Message, RedirectTo: redirect})
}

// verifyRedirectURL builds the verification-screen URL with the override
// query parameters a login attaches for unverified accounts.
func verifyRedirectURL(identifier, message string) string {
	q := url.Values{}
	if identifier != "" {
		q.Set("email", identifier)
	}
	if message != "" {
		q.Set("message", message)
	}
	if encoded := q.Encode(); encoded != "" {
		return domainauth.RouteVerifyAccount + "?" + encoded
	}
	return domainauth.RouteVerifyAccount
}

// RenterLogin handles POST /api/auth/login.
func (h *AuthHandlers) RenterLogin(w http.ResponseWriter, r *http.Request) {
	v := MustVisitor(r.Context())
	h.Sessions.StartLogin(v.State)

	res := h.API.RenterLogin(r.Context(), marketapi.RenterLoginInput{
		SessionID:  v.ID,
		Identifier: r.FormValue("identifier"),
		Password:   r.FormValue("password"),
	})
	if !res.Success {
		h.Sessions.LoginError(v.State, res.Message)
		writeFailure(w, res, true)
		return
	}
	h.finishLogin(w, r, v, res, r.FormValue("identifier"))
}

// LandlordLogin handles POST /api/auth/landlord/login.
func (h *AuthHandlers) LandlordLogin(w http.ResponseWriter, r *http.Request) {
	v := MustVisitor(r.Context())
	h.Sessions.StartLogin(v.State)

	res := h.API.LandlordLogin(r.Context(), marketapi.LandlordLoginInput{
		SessionID:  v.ID,
		Identifier: r.FormValue("identifier"),
		Password:   r.FormValue("password"),
	})
	if !res.Success {
		h.Sessions.LoginError(v.State, res.Message)
		writeFailure(w, res, true)
		return
	}
	h.finishLogin(w, r, v, res, r.FormValue("identifier"))
}

// imageUpload reads an optional multipart image field and returns it as a
// base64 data URL. Returns ok=false after writing the error response.
func (h *AuthHandlers) imageUpload(w http.ResponseWriter, r *http.Request, field string) (dataURL string, ok bool) {
	if err := r.ParseMultipartForm(maxRegisterFormBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return "", true
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Message: "Could not read the submitted form."})
		return "", false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", true
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_image", Message: "Could not read the uploaded image."})
		return "", false
	}
	defer func() {
		_ = file.Close()
	}()

	encoded, err := media.EncodeImage(file, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_image", Message: err.Error()})
		return "", false
	}
	return encoded, true
}

// finishRegistration folds a successful registration Result into the
// session and points the visitor at the verification screen.
func (h *AuthHandlers) finishRegistration(w http.ResponseWriter, r *http.Request, v *VisitorSession, res marketapi.Result) {
	ctx := r.Context()
	if err := h.Sessions.FinishRegistration(ctx, v.ID, v.State, res.Data, res.Message, res.Reason); err != nil {
		h.logger().ErrorContext(ctx, "registration commit failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_error", Message: "Could not save your session. Please try again."})
		return
	}
	WriteJSON(w, http.StatusOK, authResponse{Success: true, Message: res.Message, RedirectTo: domainauth.RouteVerifyAccount})
}

// RenterRegister handles POST /api/auth/register. Accepts urlencoded or
// multipart bodies; the optional profile_picture file becomes a data URL.
func (h *AuthHandlers) RenterRegister(w http.ResponseWriter, r *http.Request) {
	avatar, ok := h.imageUpload(w, r, "profile_picture")
	if !ok {
		return
	}

	v := MustVisitor(r.Context())
	h.Sessions.StartRegistration(v.State)

	res := h.API.RenterRegister(r.Context(), marketapi.RenterRegisterInput{
		FullName:      r.FormValue("full_name"),
		Email:         r.FormValue("email"),
		PhoneNumber:   r.FormValue("phone_number"),
		Password:      r.FormValue("password"),
		Gender:        r.FormValue("gender"),
		AvatarDataURL: avatar,
	})
	if !res.Success {
		h.Sessions.RegistrationError(v.State, res.Message)
		writeFailure(w, res, false)
		return
	}
	h.finishRegistration(w, r, v, res)
}

// LandlordRegister handles POST /api/auth/landlord/register.
func (h *AuthHandlers) LandlordRegister(w http.ResponseWriter, r *http.Request) {
	logo, ok := h.imageUpload(w, r, "business_logo")
	if !ok {
		return
	}

	v := MustVisitor(r.Context())
	h.Sessions.StartRegistration(v.State)

	res := h.API.LandlordRegister(r.Context(), marketapi.LandlordRegisterInput{
		FullName:                   r.FormValue("full_name"),
		Email:                      r.FormValue("email"),
		PhoneNumber:                r.FormValue("phone_number"),
		Password:                   r.FormValue("password"),
		BusinessName:               r.FormValue("business_name"),
		BusinessType:               r.FormValue("business_type"),
		BusinessRegistrationNumber: r.FormValue("business_registration_number"),
		Location:                   r.FormValue("location"),
		Region:                     r.FormValue("region"),
		LogoDataURL:                logo,
	})
	if !res.Success {
		h.Sessions.RegistrationError(v.State, res.Message)
		writeFailure(w, res, false)
		return
	}
	h.finishRegistration(w, r, v, res)
}

// VerifyAccount handles POST /api/auth/verify-otp. On success the pending
// session user is promoted and the visitor is sent to their dashboard.
func (h *AuthHandlers) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	v := MustVisitor(r.Context())

	res := h.API.VerifyAccount(r.Context(), marketapi.VerifyAccountInput{
		Contact: r.FormValue("contact"),
		OTP:     r.FormValue("otp"),
	})
	if !res.Success {
		writeFailure(w, res, false)
		return
	}

	if err := h.Sessions.CompleteVerification(r.Context(), v.ID, v.State, res.Data); err != nil {
		h.logger().ErrorContext(r.Context(), "verification commit failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_error", Message: "Could not save your session. Please try again."})
		return
	}
	if h.Refresh != nil {
		h.Refresh.Track(r.Context(), v.ID, v.State)
	}
	WriteJSON(w, http.StatusOK, authResponse{Success: true, Message: res.Message, RedirectTo: v.State.RedirectPath()})
}

// ResendOTP handles POST /api/auth/resend-otp.
func (h *AuthHandlers) ResendOTP(w http.ResponseWriter, r *http.Request) {
	res := h.API.ResendOTP(r.Context(), marketapi.ResendOTPInput{Contact: r.FormValue("contact")})
	if !res.Success {
		writeFailure(w, res, false)
		return
	}
	WriteJSON(w, http.StatusOK, authResponse{Success: true, Message: res.Message})
}

// RenterForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandlers) RenterForgotPassword(w http.ResponseWriter, r *http.Request) {
	res := h.API.RenterForgotPassword(r.Context(), marketapi.RenterForgotPasswordInput{Contact: r.FormValue("contact")})
	if !res.Success {
		writeFailure(w, res, false)
		return
	}
	WriteJSON(w, http.StatusOK, authResponse{Success: true, Message: res.Message})
}

// LandlordForgotPassword handles POST /api/auth/landlord/forgot-password.
func (h *AuthHandlers) LandlordForgotPassword(w http.ResponseWriter, r *http.Request) {
	res := h.API.LandlordForgotPassword(r.Context(), marketapi.LandlordForgotPasswordInput{Contact: r.FormValue("contact")})
	if !res.Success {
		writeFailure(w, res, false)
		return
	}
	WriteJSON(w, http.StatusOK, authResponse{Success: true, Message: res.Message})
}

// ResetPassword handles POST /api/auth/reset-password. On success the
// visitor signs in again with the new password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	res := h.API.RenterResetPassword(r.Context(), marketapi.RenterResetPasswordInput{
		Slug:        r.FormValue("user_slug"),
		OTP:         r.FormValue("otp"),
		NewPassword: r.FormValue("password"),
	})
	if !res.Success {
		writeFailure(w, res, false)
		return
	}
	WriteJSON(w, http.StatusOK, authResponse{Success: true, Message: res.Message, RedirectTo: domainauth.RouteLogin})
}

// Logout handles POST /api/auth/logout. The session user, registration
// data, and every vault token are cleared unconditionally.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	v := MustVisitor(r.Context())
	if h.Refresh != nil {
		h.Refresh.Stop(v.ID)
	}
	if err := h.Sessions.Logout(r.Context(), v.ID, v.State); err != nil {
		h.logger().ErrorContext(r.Context(), "logout failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_error", Message: "Could not sign you out. Please try again."})
		return
	}
	WriteJSON(w, http.StatusOK, authResponse{Success: true, Message: "Signed out.", RedirectTo: v.State.RedirectPath()})
}

// LogoutRedirect handles GET /logout: browser-navigation logout. Same
// clearing semantics as the API endpoint, answered with a redirect.
func (h *AuthHandlers) LogoutRedirect(w http.ResponseWriter, r *http.Request) {
	v := MustVisitor(r.Context())
	if h.Refresh != nil {
		h.Refresh.Stop(v.ID)
	}
	if err := h.Sessions.Logout(r.Context(), v.ID, v.State); err != nil {
		h.logger().ErrorContext(r.Context(), "logout failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_error", Message: "Could not sign you out. Please try again."})
		return
	}
	http.Redirect(w, r, v.State.RedirectPath(), http.StatusSeeOther)
}

// Session handles GET /api/session: the current session state as the
// front end consumes it.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	v := MustVisitor(r.Context())
	st := v.State
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated":         st.IsAuthenticated(),
		"requires_verification": st.RequiresVerification(),
		"user_type":             st.UserType(),
		"redirect_to":           st.RedirectPath(),
		"user":                  st.User,
		"registration_data":     st.RegistrationData,
	})
}
