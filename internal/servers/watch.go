package servers

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"mcserver/internal/api"
	"mcserver/pkg/logging"
)

// Watcher reports changes to the set of server directories.
//
// It uses fsnotify on the servers directory only (not recursively), so
// changes inside a server such as world saves do not trigger it. Bursts of
// events are collapsed into one notification per debounce interval.
type Watcher struct {
	root     string
	debounce time.Duration
}

// NewWatcher creates a watcher for the servers directory root.
func NewWatcher(root string, debounce time.Duration) *Watcher {
	if debounce == 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{root: root, debounce: debounce}
}

// Run blocks until ctx is cancelled, calling onChange after servers are
// added, removed or renamed.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return api.NewIOError("watch", w.root, err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.root); err != nil {
		return api.NewIOError("watch", w.root, err)
	}
	logging.Debug("Watcher", "Watching %s for server changes", w.root)

	// fire is nil (blocking) until a relevant event arrives; each further
	// event restarts the debounce interval.
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				fire = time.After(w.debounce)
			}

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Dir(event.Name) != filepath.Clean(w.root) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
