package marketapi

import (
	"context"

	"github.com/rentnest/rentnest-web/internal/http/validation"
	"github.com/rentnest/rentnest-web/internal/session"
)

// LandlordLoginInput carries landlord login credentials.
type LandlordLoginInput struct {
	SessionID  string
	Identifier string // email or Ghana phone number
	Password   string
}

// LandlordLogin authenticates a landlord.
func (c *Client) LandlordLogin(ctx context.Context, in LandlordLoginInput) Result {
	if msg := validation.First(in.Identifier,
		validation.Required("Email or phone number", 254),
		validation.EmailOrGhanaPhone("Email or phone number"),
	); msg != "" {
		return validationFailure(msg)
	}
	if msg := validation.First(in.Password, validation.Required("Password", 128)); msg != "" {
		return validationFailure(msg)
	}

	res := c.post(ctx, pathLandlordLogin, map[string]string{
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

// LandlordRegisterInput carries a landlord registration profile with the
// business extension fields. The logo, when present, is already a
// validated base64 data URL.
type LandlordRegisterInput struct {
	FullName                   string
	Email                      string
	PhoneNumber                string
	Password                   string
	BusinessName               string
	BusinessType               string
	BusinessRegistrationNumber string
	Location                   string
	Region                     string
	LogoDataURL                string
}

// LandlordRegister creates a landlord account.
func (c *Client) LandlordRegister(ctx context.Context, in LandlordRegisterInput) Result {
	fv := validation.New().
		Validate("full_name", in.FullName, validation.Required("Full name", 120)).
		Validate("email", in.Email, validation.Required("Email", 254), validation.Email("Email")).
		Validate("phone_number", in.PhoneNumber, validation.Required("Phone number", 12), validation.GhanaPhone("Phone number")).
		Validate("password", in.Password, validation.Password("Password")).
		Validate("business_name", in.BusinessName, validation.Required("Business name", 160)).
		Validate("business_type", in.BusinessType, validation.Required("Business type", 80)).
		Validate("business_registration_number", in.BusinessRegistrationNumber, validation.Optional("Business registration number", 80)).
		Validate("location", in.Location, validation.Optional("Location", 160)).
		Validate("region", in.Region, validation.Optional("Region", 80))
	if msg := fv.FirstError(); msg != "" {
		return validationFailure(msg)
	}

	payload := map[string]string{
		"full_name":     in.FullName,
		"email":         in.Email,
		"phone_number":  in.PhoneNumber,
		"password":      in.Password,
		"business_name": in.BusinessName,
		"business_type": in.BusinessType,
	}
	if in.BusinessRegistrationNumber != "" {
		payload["business_registration_number"] = in.BusinessRegistrationNumber
	}
	if in.Location != "" {
		payload["location"] = in.Location
	}
	if in.Region != "" {
		payload["region"] = in.Region
	}
	if in.LogoDataURL != "" {
		payload["business_logo"] = in.LogoDataURL
	}

	return c.post(ctx, pathLandlordRegister, payload)
}

// LandlordForgotPasswordInput identifies the landlord account to recover.
type LandlordForgotPasswordInput struct {
	Contact string // email or Ghana phone number
}

// LandlordForgotPassword requests a password-reset OTP for a landlord.
func (c *Client) LandlordForgotPassword(ctx context.Context, in LandlordForgotPasswordInput) Result {
	if msg := validation.First(in.Contact,
		validation.Required("Email or phone number", 254),
		validation.EmailOrGhanaPhone("Email or phone number"),
	); msg != "" {
		return validationFailure(msg)
	}

	return c.post(ctx, pathLandlordForgotPassword, map[string]string{"contact": in.Contact})
}
