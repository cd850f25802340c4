package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	"github.com/rentnest/rentnest-web/internal/ports"
	"github.com/rentnest/rentnest-web/internal/testutil"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	client, prefix := testutil.SetupTestRedis(t)
	store := NewSessionStore(SessionStoreOptions{Client: client, Prefix: prefix, TTL: time.Minute})
	ctx := context.Background()

	snap := domainauth.Snapshot{
		User: testutil.NewUser().Build(),
		RegistrationData: &domainauth.RegistrationMeta{
			Message:    "OTP sent",
			ReceivedAt: time.Now().UTC().Truncate(time.Second),
		},
	}

	require.NoError(t, store.Save(ctx, "sess-1", snap))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, snap.User.Email, got.User.Email)
	assert.Equal(t, snap.User.UserType, got.User.UserType)
	require.NotNil(t, got.RegistrationData)
	assert.Equal(t, "OTP sent", got.RegistrationData.Message)
}

func TestSessionStoreMissing(t *testing.T) {
	client, prefix := testutil.SetupTestRedis(t)
	store := NewSessionStore(SessionStoreOptions{Client: client, Prefix: prefix, TTL: time.Minute})

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStoreDelete(t *testing.T) {
	client, prefix := testutil.SetupTestRedis(t)
	store := NewSessionStore(SessionStoreOptions{Client: client, Prefix: prefix, TTL: time.Minute})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", domainauth.Snapshot{User: testutil.NewUser().Build()}))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, "sess-1"))
}

func TestSessionStoreEmptyID(t *testing.T) {
	client, prefix := testutil.SetupTestRedis(t)
	store := NewSessionStore(SessionStoreOptions{Client: client, Prefix: prefix, TTL: time.Minute})
	ctx := context.Background()

	require.Error(t, store.Save(ctx, "", domainauth.Snapshot{}))
	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}
