package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	mocksauth "github.com/rentnest/rentnest-web/internal/mocks/auth"
	"github.com/rentnest/rentnest-web/internal/testutil"
)

func newTestManager(t *testing.T) (*Manager, *mocksauth.MemorySessionStore, *mocksauth.MemoryTokenVault) {
	t.Helper()
	store := mocksauth.NewMemorySessionStore()
	vault := mocksauth.NewMemoryTokenVault()
	m := NewManager(ManagerOptions{Store: store, Vault: vault})
	return m, store, vault
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("missing session yields fresh state", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		st, err := m.Initialize(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, st.User)
		assert.False(t, st.IsLoading)
		assert.Empty(t, st.Err)
	})

	t.Run("rehydrates the durable subset", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		user := testutil.NewUser().Build()
		require.NoError(t, store.Save(ctx, "s1", domainauth.Snapshot{
			User:             user,
			RegistrationData: &domainauth.RegistrationMeta{Message: "check your email"},
		}))

		st, err := m.Initialize(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, user.Email, st.User.Email)
		assert.Equal(t, "check your email", st.RegistrationData.Message)
		assert.False(t, st.IsLoading, "transient flags start at baseline")
		assert.Empty(t, st.Err)
	})

	t.Run("store outage propagates", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		store.GetErr = errors.New("redis down")
		_, err := m.Initialize(ctx, "s1")
		require.Error(t, err)
	})
}

func TestLoginFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path commits before returning", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		st, err := m.Initialize(ctx, "s1")
		require.NoError(t, err)

		m.StartLogin(st)
		assert.True(t, st.IsLoading)

		payload := map[string]any{"status_code": "000", "user": testutil.NewUser().Payload()}
		require.NoError(t, m.FinishLogin(ctx, "s1", st, payload))

		assert.True(t, st.IsAuthenticated())
		assert.False(t, st.IsLoading)
		assert.Equal(t, domainauth.RouteDashboard, st.RedirectPath())

		// The durable subset was persisted synchronously; a guard that
		// re-initializes now sees the same user.
		snap, ok := store.Stored("s1")
		require.True(t, ok)
		require.NotNil(t, snap.User)
		assert.Equal(t, st.User.Email, snap.User.Email)
	})

	t.Run("user directly under data signs in end to end", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		st, err := m.Initialize(ctx, "s1")
		require.NoError(t, err)
		m.StartLogin(st)

		payload := map[string]any{
			"status_code": "000",
			"data": map[string]any{
				"id": 1, "full_name": "Ama", "email": "ama@example.com",
				"user_type": "rentor", "is_active": 1, "is_verified": 1,
				"token": "abc",
			},
		}
		require.NoError(t, m.FinishLogin(ctx, "s1", st, payload))

		assert.True(t, st.IsAuthenticated())
		assert.Empty(t, st.Err)
		assert.Equal(t, domainauth.KindRenter, st.UserType())
		assert.Equal(t, "abc", st.User.Token)
		assert.Equal(t, domainauth.RouteDashboard, st.RedirectPath())

		snap, ok := store.Stored("s1")
		require.True(t, ok)
		require.NotNil(t, snap.User)
		assert.Equal(t, "ama@example.com", snap.User.Email)
	})

	t.Run("missing user payload degrades without committing", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		st, _ := m.Initialize(ctx, "s1")
		m.StartLogin(st)

		require.NoError(t, m.FinishLogin(ctx, "s1", st, map[string]any{"status_code": "000"}))

		assert.Nil(t, st.User)
		assert.Equal(t, MsgInvalidLoginResponse, st.Err)
		_, ok := store.Stored("s1")
		assert.False(t, ok, "a response without a user must not persist anything")
	})

	t.Run("login error keeps the current user", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		st := &State{User: testutil.NewUser().Build()}
		m.StartLogin(st)
		m.LoginError(st, "Invalid credentials.")

		assert.Equal(t, "Invalid credentials.", st.Err)
		assert.False(t, st.IsLoading)
		assert.NotNil(t, st.User)
	})

	t.Run("commit failure surfaces", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		store.SaveErr = errors.New("redis down")
		st := &State{}
		err := m.FinishLogin(ctx, "s1", st, map[string]any{"user": testutil.NewUser().Payload()})
		require.Error(t, err)
	})
}

func TestRegistrationFlow(t *testing.T) {
	ctx := context.Background()

	nested := func(user map[string]any) map[string]any {
		return map[string]any{"data": map[string]any{"data": map[string]any{"data": user}}}
	}

	t.Run("registration then verification", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		st, _ := m.Initialize(ctx, "s1")

		m.StartRegistration(st)
		assert.True(t, st.IsRegistering)

		payload := nested(testutil.NewUser().Unverified().Payload())
		require.NoError(t, m.FinishRegistration(ctx, "s1", st, payload, "OTP sent", "pending_verification"))

		assert.False(t, st.IsRegistering)
		assert.True(t, st.RequiresVerification())
		assert.Equal(t, domainauth.RouteVerifyAccount, st.RedirectPath())
		require.NotNil(t, st.RegistrationData)
		assert.Equal(t, "OTP sent", st.RegistrationData.Message)
		assert.Equal(t, "pending_verification", st.RegistrationData.Reason)
		assert.False(t, st.RegistrationData.ReceivedAt.IsZero())

		snap, ok := store.Stored("s1")
		require.True(t, ok)
		assert.NotNil(t, snap.RegistrationData)

		// The OTP checks out; the payload omits is_verified, which
		// defaults on.
		require.NoError(t, m.CompleteVerification(ctx, "s1", st, map[string]any{"verified_at": "2026-08-28"}))
		assert.True(t, st.IsAuthenticated())
		assert.Equal(t, "2026-08-28", st.User.VerifiedAt)
		assert.Equal(t, domainauth.RouteDashboard, st.RedirectPath())
	})

	t.Run("explicit is_verified in payload is respected", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		st := &State{User: testutil.NewUser().Unverified().Build()}
		require.NoError(t, m.CompleteVerification(ctx, "s1", st, map[string]any{"is_verified": 0}))
		assert.False(t, st.IsAuthenticated())
	})

	t.Run("missing user payload degrades without committing", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		existing := testutil.NewUser().Build()
		st := &State{User: existing}
		m.StartRegistration(st)

		require.NoError(t, m.FinishRegistration(ctx, "s1", st, map[string]any{"status_code": "000"}, "ok", ""))

		assert.False(t, st.IsRegistering)
		assert.Equal(t, MsgInvalidRegistrationResponse, st.Err)
		assert.Same(t, existing, st.User, "a response without a user leaves the current user untouched")
		assert.Nil(t, st.RegistrationData)
		_, ok := store.Stored("s1")
		assert.False(t, ok, "a response without a user must not persist anything")
	})

	t.Run("registration error clears the in-flight flag", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		st := &State{}
		m.StartRegistration(st)
		m.RegistrationError(st, "Email already registered.")
		assert.False(t, st.IsRegistering)
		assert.Equal(t, "Email already registered.", st.Err)
	})

	t.Run("registration never yields admins", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		st := &State{}
		payload := nested(map[string]any{"user_type": "admin", "full_name": "Ama"})
		require.NoError(t, m.FinishRegistration(ctx, "s1", st, payload, "ok", ""))
		assert.Equal(t, domainauth.KindRenter, st.UserType())
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	m, store, vault := newTestManager(t)
	st := &State{
		User:             testutil.NewUser().WithKind(domainauth.KindLandlord).Build(),
		RegistrationData: &domainauth.RegistrationMeta{Message: "old"},
		Err:              "stale",
	}
	require.NoError(t, vault.StoreToken(ctx, "s1", domainauth.KindLandlord, "tok-a", time.Time{}))

	require.NoError(t, m.Logout(ctx, "s1", st))

	assert.Nil(t, st.User)
	assert.Nil(t, st.RegistrationData)
	assert.Empty(t, st.Err)
	assert.Equal(t, domainauth.RouteHome, st.RedirectPath())

	// The purge is unconditional and keyed by session, not by kind.
	assert.Equal(t, []string{"s1"}, vault.PurgeCalls)
	assert.Zero(t, vault.Len())

	snap, ok := store.Stored("s1")
	require.True(t, ok)
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.RegistrationData)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("merges and commits", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		st := &State{User: testutil.NewUser().WithUpdateStatus("pending").Build()}

		require.NoError(t, m.UpdateUser(ctx, "s1", st, map[string]any{
			"update_status": "approved",
			"location":      "Kumasi",
		}))

		assert.Equal(t, "approved", st.User.UpdateStatus)
		assert.Equal(t, "Kumasi", st.User.Location)
		assert.False(t, st.User.RefreshPending())

		snap, _ := store.Stored("s1")
		assert.Equal(t, "approved", snap.User.UpdateStatus)
	})

	t.Run("partial update cannot change the kind", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		st := &State{User: testutil.NewUser().Build()}
		require.NoError(t, m.UpdateUser(ctx, "s1", st, map[string]any{"user_type": "landlord"}))
		assert.Equal(t, domainauth.KindRenter, st.User.UserType)
	})

	t.Run("no-op when logged out", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		st := &State{}
		require.NoError(t, m.UpdateUser(ctx, "s1", st, map[string]any{"location": "x"}))
		_, ok := store.Stored("s1")
		assert.False(t, ok)
	})
}

func TestMarkAsVerified(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newTestManager(t)

	st := &State{User: testutil.NewUser().Unverified().Build()}
	require.NoError(t, m.MarkAsVerified(ctx, "s1", st))
	assert.True(t, st.IsVerified())

	snap, _ := store.Stored("s1")
	assert.Equal(t, domainauth.FlagOn, snap.User.IsVerified)
}
