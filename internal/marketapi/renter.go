package marketapi

import (
	"context"

	"github.com/rentnest/rentnest-web/internal/http/validation"
	"github.com/rentnest/rentnest-web/internal/session"
)

// RenterLoginInput carries renter login credentials. SessionID scopes the
// token side-channel write; leave it empty to skip the vault.
type RenterLoginInput struct {
	SessionID  string
	Identifier string // email or Ghana phone number
	Password   string
}

// RenterLogin authenticates a renter. Validation failures short-circuit
// before any network call.
func (c *Client) RenterLogin(ctx context.Context, in RenterLoginInput) Result {
	if msg := validation.First(in.Identifier,
		validation.Required("Email or phone number", 254),
		validation.EmailOrGhanaPhone("Email or phone number"),
	); msg != "" {
		return validationFailure(msg)
	}
	if msg := validation.First(in.Password, validation.Required("Password", 128)); msg != "" {
		return validationFailure(msg)
	}

	res := c.post(ctx, pathRenterLogin, map[string]string{
		"identifier": in.Identifier,
		"password":   in.Password,
	})
	if !res.Success {
		return res
	}

	if user, ok := session.NormalizeLoginUser(nil, res.Data); ok {
		res.User = user
		res.Token = user.Token
		c.storeLoginToken(ctx, in.SessionID, user.UserType, user.Token)
	}
	return res
}

// RenterRegisterInput carries a renter registration profile. The avatar,
// when present, is already a validated base64 data URL (see internal/media).
type RenterRegisterInput struct {
	FullName      string
	Email         string
	PhoneNumber   string
	Password      string
	Gender        string
	AvatarDataURL string
}

// RenterRegister creates a renter account. The raw server payload rides
// back on the Result for the session store to re-parse.
func (c *Client) RenterRegister(ctx context.Context, in RenterRegisterInput) Result {
	fv := validation.New().
		Validate("full_name", in.FullName, validation.Required("Full name", 120)).
		Validate("email", in.Email, validation.Required("Email", 254), validation.Email("Email")).
		Validate("phone_number", in.PhoneNumber, validation.Required("Phone number", 12), validation.GhanaPhone("Phone number")).
		Validate("password", in.Password, validation.Password("Password")).
		Validate("gender", in.Gender, validation.Optional("Gender", 20))
	if msg := fv.FirstError(); msg != "" {
		return validationFailure(msg)
	}

	payload := map[string]string{
		"full_name":    in.FullName,
		"email":        in.Email,
		"phone_number": in.PhoneNumber,
		"password":     in.Password,
	}
	if in.Gender != "" {
		payload["gender"] = in.Gender
	}
	if in.AvatarDataURL != "" {
		payload["profile_picture"] = in.AvatarDataURL
	}

	return c.post(ctx, pathRenterRegister, payload)
}

// RenterForgotPasswordInput identifies the account to recover.
type RenterForgotPasswordInput struct {
	Contact string // email or Ghana phone number
}

// RenterForgotPassword requests a password-reset OTP for a renter.
func (c *Client) RenterForgotPassword(ctx context.Context, in RenterForgotPasswordInput) Result {
	if msg := validation.First(in.Contact,
		validation.Required("Email or phone number", 254),
		validation.EmailOrGhanaPhone("Email or phone number"),
	); msg != "" {
		return validationFailure(msg)
	}

	return c.post(ctx, pathRenterForgotPassword, map[string]string{"contact": in.Contact})
}

// RenterResetPasswordInput carries the reset credentials: the account
// slug, the OTP from the forgot-password flow, and the new password.
type RenterResetPasswordInput struct {
	Slug        string
	OTP         string
	NewPassword string
}

// RenterResetPassword completes a renter password reset.
func (c *Client) RenterResetPassword(ctx context.Context, in RenterResetPasswordInput) Result {
	fv := validation.New().
		Validate("slug", in.Slug, validation.Required("Account reference", 120)).
		Validate("otp", in.OTP, validation.OTP("Verification code")).
		Validate("password", in.NewPassword, validation.Password("New password"))
	if msg := fv.FirstError(); msg != "" {
		return validationFailure(msg)
	}

	return c.post(ctx, pathRenterResetPassword, map[string]string{
		"user_slug": in.Slug,
		"otp":       in.OTP,
		"password":  in.NewPassword,
	})
}
