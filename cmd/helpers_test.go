package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"mcserver/internal/config"
	"mcserver/internal/session"
	"mcserver/internal/testing/mock"
)

type harness struct {
	backend *mock.FakeBackend
	root    string
	store   *config.Store
}

// newHarness points the commands at a temporary config directory and
// servers directory containing the given servers, and replaces zellij with
// a FakeBackend.
func newHarness(t *testing.T, names ...string) *harness {
	t.Helper()

	h := &harness{
		backend: mock.NewFakeBackend(),
		root:    t.TempDir(),
		store:   config.NewStoreWithPath(t.TempDir()),
	}
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(h.root, name), 0755))
	}
	require.NoError(t, h.store.With(func(cfg *config.DynamicConfig) error {
		cfg.ServersDirectory = h.root
		return nil
	}))

	oldStore, oldBackend, oldDelay := store, newBackend, settleDelay
	store = h.store
	newBackend = func() session.Backend { return h.backend }
	settleDelay = 0
	t.Cleanup(func() {
		store, newBackend, settleDelay = oldStore, oldBackend, oldDelay
	})
	return h
}

// deployable adds a server with a Server/ directory and a jar.
func (h *harness) deployable(t *testing.T, name string) {
	t.Helper()
	dir := filepath.Join(h.root, name, "Server")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jarfile.txt"), []byte("server.jar\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "server.jar"), []byte("PK"), 0644))
}

func run(cmd *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
