package servers

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Relevant(t *testing.T) {
	root := "/srv/servers"
	w := NewWatcher(root, 0)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"new server", fsnotify.Event{Name: "/srv/servers/alpha", Op: fsnotify.Create}, true},
		{"removed server", fsnotify.Event{Name: "/srv/servers/alpha", Op: fsnotify.Remove}, true},
		{"renamed server", fsnotify.Event{Name: "/srv/servers/alpha", Op: fsnotify.Rename}, true},
		{"write", fsnotify.Event{Name: "/srv/servers/alpha", Op: fsnotify.Write}, false},
		{"staging directory", fsnotify.Event{Name: "/srv/servers/.alpha.tmp", Op: fsnotify.Create}, false},
		{"nested file", fsnotify.Event{Name: "/srv/servers/alpha/world", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatcher_NotifiesOnNewServer(t *testing.T) {
	root := t.TempDir()
	w := NewWatcher(root, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var notified atomic.Int32
	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() {
			notified.Add(1)
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register before creating entries.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.Mkdir(filepath.Join(root, "alpha"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "beta"), 0755))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
	assert.GreaterOrEqual(t, notified.Load(), int32(1))
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "nope"), 0)

	err := w.Run(context.Background(), func() {})
	assert.Error(t, err)
}
