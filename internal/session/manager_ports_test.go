package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rentnest/rentnest-web/internal/mocks"
	"github.com/rentnest/rentnest-web/internal/session"
	"github.com/rentnest/rentnest-web/internal/testutil"
)

// These tests pin the call contract against the storage ports: what the
// manager calls, in what order, and how port failures surface.

func TestLogoutPurgesBeforeCommitting(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	vault := mocks.NewMockTokenVault(ctrl)
	mgr := session.NewManager(session.ManagerOptions{Store: store, Vault: vault})

	gomock.InOrder(
		vault.EXPECT().PurgeAll(gomock.Any(), "s1").Return(nil),
		store.EXPECT().Save(gomock.Any(), "s1", gomock.Any()).Return(nil),
	)

	st := &session.State{User: testutil.NewUser().Build()}
	require.NoError(t, mgr.Logout(context.Background(), "s1", st))
	assert.Nil(t, st.User)
}

func TestLogoutStopsOnPurgeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	vault := mocks.NewMockTokenVault(ctrl)
	mgr := session.NewManager(session.ManagerOptions{Store: store, Vault: vault})

	vault.EXPECT().PurgeAll(gomock.Any(), "s1").Return(errors.New("redis down"))
	// No Save expectation: a failed purge must not commit the empty state.

	st := &session.State{User: testutil.NewUser().Build()}
	err := mgr.Logout(context.Background(), "s1", st)
	require.Error(t, err)
}

func TestFinishLoginCommitsExactlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	vault := mocks.NewMockTokenVault(ctrl)
	mgr := session.NewManager(session.ManagerOptions{Store: store, Vault: vault})

	store.EXPECT().Save(gomock.Any(), "s1", gomock.Any()).Return(nil).Times(1)

	st := &session.State{}
	payload := map[string]any{"user": testutil.NewUser().Payload()}
	require.NoError(t, mgr.FinishLogin(context.Background(), "s1", st, payload))
	require.NotNil(t, st.User)
}

func TestFinishLoginWithoutUserNeverCommits(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	vault := mocks.NewMockTokenVault(ctrl)
	mgr := session.NewManager(session.ManagerOptions{Store: store, Vault: vault})

	st := &session.State{}
	require.NoError(t, mgr.FinishLogin(context.Background(), "s1", st, map[string]any{"noise": true}))
	assert.Nil(t, st.User)
	assert.NotEmpty(t, st.Err)
}
