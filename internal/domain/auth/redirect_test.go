package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedirectPath(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want string
	}{
		{name: "no user", user: nil, want: RouteHome},
		{
			name: "verification pending",
			user: &User{IsActive: FlagOn, IsVerified: FlagOff, UserType: KindRenter},
			want: RouteVerifyAccount,
		},
		{
			// Verification outranks the dashboard even when inactive.
			name: "inactive and unverified",
			user: &User{IsActive: FlagOff, IsVerified: FlagOff, UserType: KindRenter},
			want: RouteVerifyAccount,
		},
		{
			name: "renter dashboard",
			user: &User{IsActive: FlagOn, IsVerified: FlagOn, UserType: KindRenter},
			want: RouteDashboard,
		},
		{
			name: "landlord dashboard",
			user: &User{IsActive: FlagOn, IsVerified: FlagOn, UserType: KindLandlord},
			want: RouteLandlordDashboard,
		},
		{
			name: "admin dashboard",
			user: &User{IsActive: FlagOn, IsVerified: FlagOn, UserType: KindAdmin},
			want: RouteAdminDashboard,
		},
		{
			// Verified but deactivated: neither pending nor authenticated.
			name: "inactive but verified",
			user: &User{IsActive: FlagOff, IsVerified: FlagOn, UserType: KindRenter},
			want: RouteLogin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RedirectPath(tt.user))
		})
	}
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, RouteDashboard, DashboardPath(KindRenter))
	assert.Equal(t, RouteLandlordDashboard, DashboardPath(KindLandlord))
	assert.Equal(t, RouteAdminDashboard, DashboardPath(KindAdmin))
	// Unknown kinds fall back to the renter dashboard.
	assert.Equal(t, RouteDashboard, DashboardPath(Kind("ghost")))
}

func TestCanAccessRoute(t *testing.T) {
	landlord := &User{IsActive: FlagOn, IsVerified: FlagOn, UserType: KindLandlord}
	pending := &User{IsActive: FlagOn, IsVerified: FlagOff, UserType: KindLandlord}

	assert.True(t, CanAccessRoute(landlord))
	assert.True(t, CanAccessRoute(landlord, KindLandlord))
	assert.True(t, CanAccessRoute(landlord, KindRenter, KindLandlord))
	assert.False(t, CanAccessRoute(landlord, KindRenter))

	assert.False(t, CanAccessRoute(pending, KindLandlord), "unverified users cannot enter role-guarded routes")
	assert.False(t, CanAccessRoute(nil))
}
