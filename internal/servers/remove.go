package servers

import (
	"os"
	"time"

	"mcserver/internal/api"
	"mcserver/pkg/logging"
)

// RemoveAttempts is how many times removal is tried before giving up.
const RemoveAttempts = 10

var (
	removeAll  = os.RemoveAll
	retryDelay = 100 * time.Millisecond
)

// RemoveWithRetries deletes dir and everything in it, retrying up to
// attempts times with a short pause between attempts.
func RemoveWithRetries(dir string, attempts int) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = removeAll(dir); err == nil {
			return nil
		}
		logging.Debug("Registry", "Removing %s failed (attempt %d/%d): %v", dir, i, attempts, err)
		if i < attempts {
			time.Sleep(retryDelay)
		}
	}
	return api.NewIOError("remove", dir, err)
}

// Remove deletes the named server directory.
func (r *Registry) Remove(name string) error {
	dir, err := r.Dir(name)
	if err != nil {
		return err
	}
	if !r.Exists(name) {
		return api.NewServerNotFoundError(name)
	}
	return RemoveWithRetries(dir, RemoveAttempts)
}
