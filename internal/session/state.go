package session

// Package session holds the per-visitor session state machine: the single
// source of truth for who is logged in and in what state. Network I/O
// lives in internal/marketapi; this package only ingests its results.

import (
	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
)

// State is a visitor's session. User and RegistrationData are durable;
// the loading flags and Err reset to the baseline on rehydration.
type State struct {
	User             *domainauth.User
	IsLoading        bool
	IsRegistering    bool
	RegistrationData *domainauth.RegistrationMeta
	Err              string
}

// Snapshot returns the durable subset of the state.
func (s *State) Snapshot() domainauth.Snapshot {
	return domainauth.Snapshot{
		User:             s.User,
		RegistrationData: s.RegistrationData,
	}
}

// IsAuthenticated reports whether the current user is active and verified.
func (s *State) IsAuthenticated() bool { return s.User.IsAuthenticated() }

// IsVerified reports whether the current user has completed verification.
func (s *State) IsVerified() bool { return s.User != nil && s.User.IsVerified.Truthy() }

// RequiresVerification reports whether the current user still has to
// complete OTP verification.
func (s *State) RequiresVerification() bool { return s.User.RequiresVerification() }

// UserType returns the current user's kind, or "" when logged out.
func (s *State) UserType() domainauth.Kind {
	if s.User == nil {
		return ""
	}
	return s.User.UserType
}

// HasRole reports whether the current user's kind matches any given role.
func (s *State) HasRole(roles ...domainauth.Kind) bool { return s.User.HasRole(roles...) }

// RedirectPath runs the redirect cascade for the current user.
func (s *State) RedirectPath() string { return domainauth.RedirectPath(s.User) }

// CanAccessRoute reports whether the visitor may enter a route restricted
// to the given roles.
func (s *State) CanAccessRoute(roles ...domainauth.Kind) bool {
	return domainauth.CanAccessRoute(s.User, roles...)
}
