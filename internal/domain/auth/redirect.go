package auth

// Application routes the redirect cascade can resolve to.
const (
	RouteHome              = "/home"
	RouteLogin             = "/login"
	RouteVerifyAccount     = "/verify-account"
	RouteDashboard         = "/dashboard"
	RouteLandlordDashboard = "/landlord-dashboard"
	RouteAdminDashboard    = "/admin-dashboard"
)

// RedirectPath is the single redirect decision function. Every guard and
// the session manager route through it; the cascade is ordered and the
// first matching rule wins:
//
//  1. no user               -> /home
//  2. verification pending  -> /verify-account
//  3. authenticated         -> dashboard for the user's kind
//  4. otherwise (inactive)  -> /login
//
// Rules 2 and 3 must stay in this order: a verified-but-inactive user
// falls through both and lands on /login.
func RedirectPath(u *User) string {
	switch {
	case u == nil:
		return RouteHome
	case u.RequiresVerification():
		return RouteVerifyAccount
	case u.IsAuthenticated():
		return DashboardPath(u.UserType)
	default:
		return RouteLogin
	}
}

// DashboardPath maps a user kind to its dashboard. Unrecognized kinds get
// the renter dashboard.
func DashboardPath(kind Kind) string {
	switch kind {
	case KindLandlord:
		return RouteLandlordDashboard
	case KindAdmin:
		return RouteAdminDashboard
	default:
		return RouteDashboard
	}
}

// CanAccessRoute reports whether the user may enter a route restricted to
// the given roles. An empty role list means any authenticated user.
func CanAccessRoute(u *User, roles ...Kind) bool {
	if !u.IsAuthenticated() {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	return u.HasRole(roles...)
}
