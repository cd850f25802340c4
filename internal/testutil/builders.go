package testutil

import (
	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
)

// UserBuilder provides a fluent interface for building User records for testing.
type UserBuilder struct {
	user *domainauth.User
}

// NewUser creates a UserBuilder with sensible defaults: an active,
// verified renter.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: &domainauth.User{
			ID:          "101",
			UserSlug:    "ama-renter",
			FullName:    "Ama Mensah",
			Email:       "ama@example.com",
			PhoneNumber: "233201234567",
			IsActive:    domainauth.FlagOn,
			IsVerified:  domainauth.FlagOn,
			UserType:    domainauth.KindRenter,
		},
	}
}

// WithKind sets the user kind and, for landlords, a landlord slug.
func (b *UserBuilder) WithKind(kind domainauth.Kind) *UserBuilder {
	b.user.UserType = kind
	if kind == domainauth.KindLandlord {
		b.user.LandlordSlug = "kofi-properties"
		b.user.UserSlug = ""
	}
	return b
}

// WithFlags sets both status flags.
func (b *UserBuilder) WithFlags(active, verified domainauth.Flag) *UserBuilder {
	b.user.IsActive = active
	b.user.IsVerified = verified
	return b
}

// Unverified clears is_verified.
func (b *UserBuilder) Unverified() *UserBuilder {
	b.user.IsVerified = domainauth.FlagOff
	return b
}

// Inactive clears is_active.
func (b *UserBuilder) Inactive() *UserBuilder {
	b.user.IsActive = domainauth.FlagOff
	return b
}

// WithToken sets the bearer token.
func (b *UserBuilder) WithToken(token string) *UserBuilder {
	b.user.Token = token
	return b
}

// WithUpdateStatus sets the profile update status driving the refresh
// poller.
func (b *UserBuilder) WithUpdateStatus(status string) *UserBuilder {
	b.user.UpdateStatus = status
	return b
}

// WithKYCPending marks KYC verification as outstanding.
func (b *UserBuilder) WithKYCPending() *UserBuilder {
	pending := false
	b.user.KYCVerification = &pending
	return b
}

// Build returns the constructed user.
func (b *UserBuilder) Build() *domainauth.User {
	u := *b.user
	return &u
}

// Payload returns the user as a raw API-shaped map, the way login and
// profile responses carry it.
func (b *UserBuilder) Payload() map[string]any {
	u := b.user
	payload := map[string]any{
		"id":           string(u.ID),
		"full_name":    u.FullName,
		"email":        u.Email,
		"phone_number": u.PhoneNumber,
		"is_active":    int(u.IsActive),
		"is_verified":  int(u.IsVerified),
		"user_type":    string(u.UserType),
	}
	if u.UserSlug != "" {
		payload["user_slug"] = u.UserSlug
	}
	if u.LandlordSlug != "" {
		payload["landlord_slug"] = u.LandlordSlug
	}
	if u.Token != "" {
		payload["token"] = u.Token
	}
	if u.UpdateStatus != "" {
		payload["update_status"] = u.UpdateStatus
	}
	if u.KYCVerification != nil {
		payload["kyc_verification"] = *u.KYCVerification
	}
	return payload
}
