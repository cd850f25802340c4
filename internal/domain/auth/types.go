package auth

// Package auth contains domain-level types for visitor sessions.
// It is pure and free of framework/adapter concerns.

import (
	"bytes"
	"encoding/json"
	"time"
)

// Kind classifies the visitor account. Wire values come from the
// marketplace API and are kept verbatim ("rentor" is the API's spelling).
type Kind string

const (
	KindRenter   Kind = "rentor"
	KindLandlord Kind = "landlord"
	KindAdmin    Kind = "admin"
)

// Flag is a status flag the API serves as 0/1, true/false, or "0"/"1"
// depending on endpoint vintage. It normalizes to 0 or 1.
type Flag int

const (
	FlagOff Flag = 0
	FlagOn  Flag = 1
)

// Truthy reports whether the flag is set.
func (f Flag) Truthy() bool { return f != 0 }

// UnmarshalJSON accepts numeric, boolean, and string encodings of the flag.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "1", "true", `"1"`, `"true"`:
		*f = FlagOn
	default:
		*f = FlagOff
	}
	return nil
}

// StringID tolerates the API serving record IDs as either numbers or
// strings, normalizing to the string form.
type StringID string

// UnmarshalJSON accepts numeric and string encodings of the ID.
func (s *StringID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StringID(v)
		return nil
	}
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = StringID(n.String())
	return nil
}

// User is the client-held identity record for the current visitor.
// It is replaced wholesale at login/registration and only ever changed
// through Merge; fields beyond the status flags are carried for display
// and never interpreted here.
type User struct {
	ID           StringID `json:"id"`
	UserSlug     string   `json:"user_slug,omitempty"`
	LandlordSlug string   `json:"landlord_slug,omitempty"`
	FullName     string   `json:"full_name"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phone_number"`

	IsActive   Flag `json:"is_active"`
	IsVerified Flag `json:"is_verified"`

	UserType Kind `json:"user_type"`

	Token string `json:"token,omitempty"`

	Gender                     string `json:"gender,omitempty"`
	ProfilePicture             string `json:"profile_picture,omitempty"`
	BusinessName               string `json:"business_name,omitempty"`
	BusinessType               string `json:"business_type,omitempty"`
	BusinessRegistrationNumber string `json:"business_registration_number,omitempty"`
	BusinessLogo               string `json:"business_logo,omitempty"`
	Location                   string `json:"location,omitempty"`
	Region                     string `json:"region,omitempty"`
	PropertiesCount            int    `json:"properties_count,omitempty"`
	VerificationChannel        string `json:"verification_channel,omitempty"`
	VerifiedAt                 string `json:"verified_at,omitempty"`

	// Fields driving the profile-refresh poller.
	UpdateStatus    string `json:"update_status,omitempty"`
	KYCVerification *bool  `json:"kyc_verification,omitempty"`
}

// IsAuthenticated reports whether the user is a fully usable account:
// present, active, and verified. Both flags must be set.
func (u *User) IsAuthenticated() bool {
	return u != nil && u.IsActive.Truthy() && u.IsVerified.Truthy()
}

// RequiresVerification reports whether the user still has to complete
// OTP verification. This is driven by is_verified alone; an inactive but
// verified user is neither authenticated nor verification-pending.
func (u *User) RequiresVerification() bool {
	return u != nil && !u.IsVerified.Truthy()
}

// HasRole reports whether the user's kind matches any of the given roles.
func (u *User) HasRole(roles ...Kind) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.UserType == r {
			return true
		}
	}
	return false
}

// Slug returns the API identifier for profile lookups: landlords carry
// landlord_slug, everyone else user_slug.
func (u *User) Slug() string {
	if u == nil {
		return ""
	}
	if u.UserType == KindLandlord && u.LandlordSlug != "" {
		return u.LandlordSlug
	}
	if u.UserSlug != "" {
		return u.UserSlug
	}
	return u.LandlordSlug
}

// RefreshPending reports whether the profile-refresh poller should keep
// polling for this user.
func (u *User) RefreshPending() bool {
	if u == nil {
		return false
	}
	if u.UpdateStatus == "pending" {
		return true
	}
	return u.KYCVerification != nil && !*u.KYCVerification
}

// Merge shallow-merges the given partial payload into the user and
// returns the result. Only keys present in partial change; UserType is
// pinned at ingestion time and never overwritten by partial updates.
func (u *User) Merge(partial map[string]any) (*User, error) {
	if u == nil || len(partial) == 0 {
		return u, nil
	}

	base, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, v := range partial {
		m[k] = v
	}

	merged, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	out := &User{}
	if err := json.Unmarshal(merged, out); err != nil {
		return nil, err
	}
	out.UserType = u.UserType
	return out, nil
}

// RegistrationMeta records the server's last registration response so the
// verification screen can show it after a reload.
type RegistrationMeta struct {
	Message    string    `json:"message,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// Snapshot is the durable subset of session state. Transient flags
// (loading, registering, last error) are never persisted.
type Snapshot struct {
	User             *User             `json:"user,omitempty"`
	RegistrationData *RegistrationMeta `json:"registration_data,omitempty"`
}
