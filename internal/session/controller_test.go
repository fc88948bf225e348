package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcserver/internal/api"
	"mcserver/internal/servers"
	"mcserver/internal/session"
	"mcserver/internal/testing/mock"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	backend  *mock.FakeBackend
	registry *servers.Registry
	clock    *mock.MockClock
	ctrl     *session.Controller
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()

	root := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), 0755))
	}

	f := &fixture{
		backend:  mock.NewFakeBackend(),
		registry: servers.NewRegistry(root),
		clock:    mock.NewMockClock(epoch),
	}
	f.registry.SetClock(f.clock)
	f.ctrl = session.NewController(f.backend, f.registry)

	restore := session.SetSleepForTest(func(d time.Duration) {
		f.backend.Record("sleep " + d.String())
	})
	t.Cleanup(restore)
	return f
}

func (f *fixture) list(t *testing.T) []api.Server {
	t.Helper()
	list, err := f.registry.List()
	require.NoError(t, err)
	return list
}

func TestCreate_Ordering(t *testing.T) {
	f := newFixture(t, "beta")

	err := f.ctrl.Create(context.Background(), "beta", "java -jar server.jar")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"delete beta.mcserver",
		"spawn beta.mcserver",
		"sleep 300ms",
		"write-chars beta.mcserver java -jar server.jar",
		"write beta.mcserver 13",
		"wait beta.mcserver",
	}, f.backend.Calls())

	recorded, ok, err := f.registry.LastUsed("beta")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, epoch.Unix(), recorded.Unix())
}

func TestCreate_IsIdempotent(t *testing.T) {
	f := newFixture(t, "beta")
	ctx := context.Background()

	f.backend.SetError("delete", &api.CommandFailureError{ExitCode: 1, Stderr: []byte("no such session")})

	require.NoError(t, f.ctrl.Create(ctx, "beta", ""))
	require.NoError(t, f.ctrl.Create(ctx, "beta", ""))

	calls := f.backend.Calls()
	assert.Equal(t, []string{
		"delete beta.mcserver", "spawn beta.mcserver", "sleep 300ms", "wait beta.mcserver",
		"delete beta.mcserver", "spawn beta.mcserver", "sleep 300ms", "wait beta.mcserver",
	}, calls)
}

func TestCreate_WaitFailureIsNotAnError(t *testing.T) {
	f := newFixture(t, "beta")
	f.backend.SetError("wait", &api.CommandFailureError{ExitCode: 1})

	assert.NoError(t, f.ctrl.Create(context.Background(), "beta", ""))
}

func TestCreate_SpawnFailure(t *testing.T) {
	f := newFixture(t, "beta")
	f.backend.SetError("spawn", api.NewIOError("spawn", "zellij", os.ErrNotExist))

	err := f.ctrl.Create(context.Background(), "beta", "start")

	var ioErr *api.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, 0, f.backend.CountCalls("write-chars"))
}

func TestCreate_WriteFailureReleasesSession(t *testing.T) {
	f := newFixture(t, "beta")
	f.backend.SetError("write-chars", &api.CommandFailureError{ExitCode: 1, Stderr: []byte("no pane")})

	err := f.ctrl.Create(context.Background(), "beta", "start")
	require.Error(t, err)
	assert.True(t, api.IsCommandFailure(err))

	assert.Equal(t, []string{
		"delete beta.mcserver",
		"spawn beta.mcserver",
		"sleep 300ms",
		"write-chars beta.mcserver start",
		"kill beta.mcserver",
		"wait beta.mcserver",
	}, f.backend.Calls())
	assert.Empty(t, f.backend.Sessions())
}

func TestCreate_MissingServerDirectory(t *testing.T) {
	f := newFixture(t)

	err := f.ctrl.Create(context.Background(), "ghost", "")

	var ioErr *api.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Empty(t, f.backend.Calls())
}

func TestCreate_CustomSettleDelay(t *testing.T) {
	f := newFixture(t, "beta")
	f.ctrl.SetSettleDelay(time.Second)

	require.NoError(t, f.ctrl.Create(context.Background(), "beta", ""))
	assert.Contains(t, f.backend.Calls(), "sleep 1s")
}

func TestAttach(t *testing.T) {
	f := newFixture(t, "alpha")

	require.NoError(t, f.ctrl.Attach(context.Background(), "alpha"))
	assert.Equal(t, []string{"attach alpha.mcserver"}, f.backend.Calls())

	_, ok, err := f.registry.LastUsed("alpha")
	require.NoError(t, err)
	assert.True(t, ok, "attach should record last use")
}

func TestAttach_FailureKeepsStderrAndSkipsRecord(t *testing.T) {
	f := newFixture(t, "alpha")
	f.backend.SetError("attach", &api.CommandFailureError{ExitCode: 1, Stderr: []byte("Session not found")})

	err := f.ctrl.Attach(context.Background(), "alpha")

	var failure *api.CommandFailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Session not found", string(failure.Stderr))

	_, ok, err := f.registry.LastUsed("alpha")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteLine(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.WriteLine(context.Background(), "alpha.mcserver", "stop"))
	assert.Equal(t, []string{
		"write-chars alpha.mcserver stop",
		"write alpha.mcserver 13",
	}, f.backend.Calls())
}

func TestWriteLine_StopsOnCharsFailure(t *testing.T) {
	f := newFixture(t)
	f.backend.SetError("write-chars", &api.CommandFailureError{ExitCode: 2})

	err := f.ctrl.WriteLine(context.Background(), "alpha.mcserver", "stop")
	assert.True(t, api.IsCommandFailure(err))
	assert.Equal(t, 0, f.backend.CountCalls("write"))
}

func TestKillSession(t *testing.T) {
	f := newFixture(t)
	f.backend.SetSessions(api.SessionInfo{Name: "alpha.mcserver"})

	require.NoError(t, f.ctrl.KillSession(context.Background(), "alpha.mcserver"))
	assert.Empty(t, f.backend.Sessions())
}

func TestAliveSessions(t *testing.T) {
	f := newFixture(t)
	f.backend.SetSessions(
		api.SessionInfo{Name: "alpha.mcserver"},
		api.SessionInfo{Name: "beta.mcserver", Exited: true},
		api.SessionInfo{Name: "scratch"},
	)

	alive, err := f.ctrl.AliveSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"alpha": {}}, alive)
}

func TestAliveSessions_NoSessions(t *testing.T) {
	f := newFixture(t)

	alive, err := f.ctrl.AliveSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alive)
}

func TestAliveSessions_ListFailure(t *testing.T) {
	f := newFixture(t)
	f.backend.SetError("list", &api.CommandFailureError{ExitCode: 2, Stderr: []byte("boom")})

	_, err := f.ctrl.AliveSessions(context.Background())
	assert.True(t, api.IsCommandFailure(err))
}

func TestState(t *testing.T) {
	f := newFixture(t, "alpha", "beta", "gamma", "delta")
	f.backend.SetSessions(
		api.SessionInfo{Name: "alpha.mcserver"},
		api.SessionInfo{Name: "beta.mcserver", Exited: true},
	)
	require.NoError(t, f.registry.SaveLastUsed("gamma"))

	ctx := context.Background()
	tests := map[string]api.SessionState{
		"alpha": api.StateRunning,
		"beta":  api.StateExited,
		"gamma": api.StateGone,
		"delta": api.StateUnknown,
	}
	for server, want := range tests {
		got, err := f.ctrl.State(ctx, server)
		require.NoError(t, err)
		assert.Equal(t, want, got, "state of %s", server)
	}
}

// alpha is running, beta was used 90 minutes ago and has no session.
func TestTagServers_AlphaBeta(t *testing.T) {
	f := newFixture(t, "alpha", "beta")
	require.NoError(t, f.registry.SaveLastUsed("beta"))
	f.clock.Advance(90 * time.Minute)
	f.backend.SetSessions(api.SessionInfo{Name: "alpha.mcserver"})

	list := f.list(t)
	require.NoError(t, f.ctrl.TagServers(context.Background(), list))

	assert.Equal(t, []api.Server{
		{Name: "alpha", Tags: []string{"active"}, State: api.StateRunning},
		{Name: "beta", Tags: []string{"last used 1h 30m ago"}, State: api.StateGone},
	}, list)
	assert.Equal(t, 1, f.backend.CountCalls("list"))
}

func TestTagServers_ExitedAndUnknown(t *testing.T) {
	f := newFixture(t, "beta", "gamma", "broken")
	require.NoError(t, f.registry.SaveLastUsed("beta"))
	require.NoError(t, os.WriteFile(filepath.Join(f.registry.Root(), "broken", servers.LastUsedFileName), []byte{1, 2, 3, 4, 5}, 0644))
	f.backend.SetSessions(api.SessionInfo{Name: "beta.mcserver", Exited: true})

	list := f.list(t)
	require.NoError(t, f.ctrl.TagServers(context.Background(), list))

	assert.Equal(t, []api.Server{
		{Name: "beta", Tags: []string{"exited", "last used 0s ago"}, State: api.StateExited},
		{Name: "broken", Tags: []string{"unknown"}, State: api.StateUnknown},
		{Name: "gamma", Tags: []string{"unknown"}, State: api.StateUnknown},
	}, list)
}

func TestRetain_PartitionIsDisjointAndComplete(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}
	f := newFixture(t, names...)
	f.backend.SetSessions(
		api.SessionInfo{Name: "a.mcserver"},
		api.SessionInfo{Name: "c.mcserver", Exited: true},
		api.SessionInfo{Name: "d.mcserver"},
	)
	ctx := context.Background()

	active, err := f.ctrl.RetainActive(ctx, f.list(t))
	require.NoError(t, err)
	inactive, err := f.ctrl.RetainInactive(ctx, f.list(t))
	require.NoError(t, err)

	activeNames := api.ServerNames(active)
	inactiveNames := api.ServerNames(inactive)

	assert.Equal(t, []string{"a", "d"}, activeNames)
	assert.Equal(t, []string{"b", "c", "e"}, inactiveNames)
	assert.ElementsMatch(t, names, append(activeNames, inactiveNames...))

	for _, s := range active {
		assert.Equal(t, []string{"active"}, s.Tags)
	}
	for _, s := range inactive {
		assert.NotEmpty(t, s.Tags, "inactive server %s should carry a last-used tag", s.Name)
	}
}

func TestRetainDead(t *testing.T) {
	f := newFixture(t, "a", "b", "c")
	require.NoError(t, f.registry.SaveLastUsed("b"))
	f.clock.Advance(2 * time.Hour)
	f.backend.SetSessions(
		api.SessionInfo{Name: "a.mcserver"},
		api.SessionInfo{Name: "b.mcserver", Exited: true},
	)

	dead, err := f.ctrl.RetainDead(context.Background(), f.list(t))
	require.NoError(t, err)
	assert.Equal(t, []api.Server{
		{Name: "b", Tags: []string{"exited", "last used 2h ago"}, State: api.StateExited},
	}, dead)
}

func TestRetain_ListFailureLeavesSliceUntouched(t *testing.T) {
	f := newFixture(t, "a")
	f.backend.SetError("list", errors.New("boom"))

	list := f.list(t)
	got, err := f.ctrl.RetainActive(context.Background(), list)
	require.Error(t, err)
	assert.Equal(t, list, got)
}
