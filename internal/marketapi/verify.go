package marketapi

import (
	"context"

	"github.com/rentnest/rentnest-web/internal/http/validation"
)

// VerifyAccountInput carries the OTP check for a freshly registered
// account.
type VerifyAccountInput struct {
	Contact string // email or Ghana phone number the OTP was sent to
	OTP     string
}

// VerifyAccount confirms the registration OTP. On success the response
// payload carries the promoted account record for the session store's
// CompleteVerification.
func (c *Client) VerifyAccount(ctx context.Context, in VerifyAccountInput) Result {
	fv := validation.New().
		Validate("contact", in.Contact, validation.Required("Email or phone number", 254), validation.EmailOrGhanaPhone("Email or phone number")).
		Validate("otp", in.OTP, validation.OTP("Verification code"))
	if msg := fv.FirstError(); msg != "" {
		return validationFailure(msg)
	}

	return c.post(ctx, pathVerifyOTP, map[string]string{
		"contact": in.Contact,
		"otp":     in.OTP,
	})
}

// ResendOTPInput identifies the account that needs a fresh code.
type ResendOTPInput struct {
	Contact string
}

// ResendOTP asks the server to send a new verification code.
func (c *Client) ResendOTP(ctx context.Context, in ResendOTPInput) Result {
	if msg := validation.First(in.Contact,
		validation.Required("Email or phone number", 254),
		validation.EmailOrGhanaPhone("Email or phone number"),
	); msg != "" {
		return validationFailure(msg)
	}

	return c.post(ctx, pathResendOTP, map[string]string{"contact": in.Contact})
}
