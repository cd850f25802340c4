package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mocksauth "github.com/rentnest/rentnest-web/internal/mocks/auth"
	"github.com/rentnest/rentnest-web/internal/session"
	"github.com/rentnest/rentnest-web/internal/testutil"
)

func newTestRunner(t *testing.T, store *mocksauth.MemorySessionStore, fetcher *mocksauth.StubProfileFetcher) (*Runner, *session.Manager) {
	t.Helper()

	mgr := session.NewManager(session.ManagerOptions{
		Store: store,
		Vault: mocksauth.NewMemoryTokenVault(),
	})
	runner, err := NewRunner(RunnerOptions{
		Sessions: mgr,
		Profiles: fetcher,
		Interval: 20 * time.Millisecond,
		Timeout:  10 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(runner.StopAll)
	return runner, mgr
}

func TestNewRunnerRequiresDeps(t *testing.T) {
	_, err := NewRunner(RunnerOptions{Profiles: &mocksauth.StubProfileFetcher{}})
	require.Error(t, err)

	mgr := session.NewManager(session.ManagerOptions{
		Store: mocksauth.NewMemorySessionStore(),
		Vault: mocksauth.NewMemoryTokenVault(),
	})
	_, err = NewRunner(RunnerOptions{Sessions: mgr})
	require.Error(t, err)
}

func TestTrackIgnoresSettledUsers(t *testing.T) {
	store := mocksauth.NewMemorySessionStore()
	fetcher := &mocksauth.StubProfileFetcher{}
	runner, _ := newTestRunner(t, store, fetcher)

	// Verified and active with nothing outstanding, so no poller starts.
	st := &session.State{User: testutil.NewUser().Build()}
	runner.Track(context.Background(), "s1", st)
	runner.Track(context.Background(), "", st)
	runner.Track(context.Background(), "s2", nil)

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, fetcher.CallCount())
}

func TestPollStopsOncePendingClears(t *testing.T) {
	user := testutil.NewUser().WithUpdateStatus("pending").Build()
	store := mocksauth.NewMemorySessionStore()
	fetcher := &mocksauth.StubProfileFetcher{
		Payload: map[string]any{"update_status": "complete"},
	}
	runner, mgr := newTestRunner(t, store, fetcher)

	ctx := context.Background()
	require.NoError(t, mgr.FinishLogin(ctx, "s1", &session.State{}, map[string]any{"user": testutil.NewUser().WithUpdateStatus("pending").Payload()}))

	st, err := mgr.Initialize(ctx, "s1")
	require.NoError(t, err)
	require.True(t, st.User.RefreshPending())

	runner.Track(ctx, "s1", st)

	require.Eventually(t, func() bool {
		snap, ok := store.Stored("s1")
		return ok && snap.User != nil && snap.User.UpdateStatus == "complete"
	}, time.Second, 5*time.Millisecond)

	// The poller should have exited after the flip; the call count freezes.
	var settled int
	require.Eventually(t, func() bool {
		n := fetcher.CallCount()
		if n == settled && n > 0 {
			return true
		}
		settled = n
		return false
	}, time.Second, 50*time.Millisecond)

	snap, _ := store.Stored("s1")
	assert.Equal(t, user.UserType, snap.User.UserType)
}

func TestTransientFetchFailureKeepsPolling(t *testing.T) {
	store := mocksauth.NewMemorySessionStore()
	fetcher := &mocksauth.StubProfileFetcher{Err: errors.New("upstream down")}
	runner, mgr := newTestRunner(t, store, fetcher)

	ctx := context.Background()
	require.NoError(t, mgr.FinishLogin(ctx, "s1", &session.State{}, map[string]any{"user": testutil.NewUser().WithKYCPending().Payload()}))
	st, err := mgr.Initialize(ctx, "s1")
	require.NoError(t, err)

	runner.Track(ctx, "s1", st)

	require.Eventually(t, func() bool {
		return fetcher.CallCount() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestStopHaltsPolling(t *testing.T) {
	store := mocksauth.NewMemorySessionStore()
	fetcher := &mocksauth.StubProfileFetcher{Err: errors.New("upstream down")}
	runner, mgr := newTestRunner(t, store, fetcher)

	ctx := context.Background()
	require.NoError(t, mgr.FinishLogin(ctx, "s1", &session.State{}, map[string]any{"user": testutil.NewUser().WithUpdateStatus("pending").Payload()}))
	st, err := mgr.Initialize(ctx, "s1")
	require.NoError(t, err)

	runner.Track(ctx, "s1", st)
	require.Eventually(t, func() bool {
		return fetcher.CallCount() >= 1
	}, time.Second, 5*time.Millisecond)

	runner.Stop("s1")
	time.Sleep(40 * time.Millisecond)
	frozen := fetcher.CallCount()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, frozen, fetcher.CallCount())
}
