package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
)

func flatLoginBody(user map[string]any) map[string]any {
	return map[string]any{"status_code": "000", "user": user}
}

func nestedBody(user map[string]any) map[string]any {
	return map[string]any{
		"status_code": "000",
		"data": map[string]any{
			"data": map[string]any{
				"data": user,
			},
		},
	}
}

func singleLevelBody(user map[string]any) map[string]any {
	return map[string]any{"status_code": "000", "data": user}
}

func TestNormalizeLoginUserShapes(t *testing.T) {
	user := map[string]any{
		"id": 7, "full_name": "Ama", "user_type": "rentor",
		"is_active": 1, "is_verified": "1",
	}

	t.Run("flat shape", func(t *testing.T) {
		u, ok := NormalizeLoginUser(nil, flatLoginBody(user))
		require.True(t, ok)
		assert.Equal(t, domainauth.StringID("7"), u.ID)
		assert.Equal(t, domainauth.KindRenter, u.UserType)
		assert.True(t, u.IsAuthenticated())
	})

	t.Run("nested shape", func(t *testing.T) {
		u, ok := NormalizeLoginUser(nil, nestedBody(user))
		require.True(t, ok)
		assert.Equal(t, "Ama", u.FullName)
	})

	t.Run("single-level data shape", func(t *testing.T) {
		u, ok := NormalizeLoginUser(nil, singleLevelBody(user))
		require.True(t, ok)
		assert.Equal(t, domainauth.StringID("7"), u.ID)
		assert.Equal(t, domainauth.KindRenter, u.UserType)
		assert.True(t, u.IsAuthenticated())
	})

	t.Run("nested wins over its own wrapper", func(t *testing.T) {
		// The deep-nested envelope also has a map under "data"; the record
		// inside it must win, never the wrapper.
		u, ok := NormalizeLoginUser(nil, nestedBody(user))
		require.True(t, ok)
		assert.Equal(t, "Ama", u.FullName)
		assert.NotEmpty(t, u.ID)
	})

	t.Run("list under data is not a user", func(t *testing.T) {
		_, ok := NormalizeLoginUser(nil, map[string]any{
			"status_code": "000",
			"data":        []any{map[string]any{"full_name": "Ama"}},
		})
		assert.False(t, ok)
	})

	t.Run("flat wins over nested", func(t *testing.T) {
		body := nestedBody(map[string]any{"full_name": "Nested"})
		body["user"] = map[string]any{"full_name": "Flat", "is_active": 1, "is_verified": 1}
		u, ok := NormalizeLoginUser(nil, body)
		require.True(t, ok)
		assert.Equal(t, "Flat", u.FullName)
	})

	t.Run("missing user", func(t *testing.T) {
		_, ok := NormalizeLoginUser(nil, map[string]any{"status_code": "000"})
		assert.False(t, ok)
	})

	t.Run("empty user object", func(t *testing.T) {
		_, ok := NormalizeLoginUser(nil, flatLoginBody(map[string]any{}))
		assert.False(t, ok)
	})
}

func TestNormalizeLoginUserKinds(t *testing.T) {
	t.Run("explicit admin is honored and forced verified", func(t *testing.T) {
		u, ok := NormalizeLoginUser(nil, flatLoginBody(map[string]any{
			"user_type": "admin", "is_active": 1, "is_verified": 0,
		}))
		require.True(t, ok)
		assert.Equal(t, domainauth.KindAdmin, u.UserType)
		assert.Equal(t, domainauth.FlagOn, u.IsVerified, "admins bypass OTP verification")
	})

	t.Run("business fields imply landlord", func(t *testing.T) {
		u, ok := NormalizeLoginUser(nil, flatLoginBody(map[string]any{
			"business_name": "Kofi Properties", "is_active": 1, "is_verified": 1,
		}))
		require.True(t, ok)
		assert.Equal(t, domainauth.KindLandlord, u.UserType)
	})

	t.Run("default is renter", func(t *testing.T) {
		u, ok := NormalizeLoginUser(nil, flatLoginBody(map[string]any{
			"full_name": "Ama", "is_active": 1, "is_verified": 1,
		}))
		require.True(t, ok)
		assert.Equal(t, domainauth.KindRenter, u.UserType)
	})

	t.Run("blank business fields do not imply landlord", func(t *testing.T) {
		u, ok := NormalizeLoginUser(nil, flatLoginBody(map[string]any{
			"full_name": "Ama", "business_name": "  ", "is_active": 1, "is_verified": 1,
		}))
		require.True(t, ok)
		assert.Equal(t, domainauth.KindRenter, u.UserType)
	})
}

func TestNormalizeRegistrationUser(t *testing.T) {
	t.Run("nested only", func(t *testing.T) {
		_, ok := NormalizeRegistrationUser(nil, flatLoginBody(map[string]any{"full_name": "Ama"}))
		assert.False(t, ok, "registration must not accept the flat login shape")

		_, ok = NormalizeRegistrationUser(nil, singleLevelBody(map[string]any{"full_name": "Ama"}))
		assert.False(t, ok, "registration must not accept the single-level login shape")

		u, ok := NormalizeRegistrationUser(nil, nestedBody(map[string]any{"full_name": "Ama"}))
		require.True(t, ok)
		assert.Equal(t, "Ama", u.FullName)
	})

	t.Run("explicit user_type is ignored", func(t *testing.T) {
		// Registration can never mint an admin, whatever the payload says.
		u, ok := NormalizeRegistrationUser(nil, nestedBody(map[string]any{
			"user_type": "admin", "full_name": "Ama",
		}))
		require.True(t, ok)
		assert.Equal(t, domainauth.KindRenter, u.UserType)
	})

	t.Run("landlord heuristic still applies", func(t *testing.T) {
		u, ok := NormalizeRegistrationUser(nil, nestedBody(map[string]any{
			"business_type": "real estate",
		}))
		require.True(t, ok)
		assert.Equal(t, domainauth.KindLandlord, u.UserType)
	})
}
