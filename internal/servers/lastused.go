package servers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mcserver/internal/api"
)

// LastUsedFileName is the per-server record of the most recent start or attach.
const LastUsedFileName = ".last_used"

const lastUsedSize = 8

// year is 365.2425 days.
const year = 31556952 * time.Second

// SaveLastUsed records the current time as the server's last use.
func (r *Registry) SaveLastUsed(server string) error {
	dir, err := r.Dir(server)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, LastUsedFileName)

	secs := r.clock.Now().Unix()
	if secs < 0 {
		secs = 0
	}

	buf := make([]byte, lastUsedSize)
	binary.LittleEndian.PutUint64(buf, uint64(secs))

	if err := os.WriteFile(path, buf, 0644); err != nil {
		return api.NewIOError("write", path, err)
	}
	return nil
}

// LastUsed reads the server's last-used record. The boolean is false when
// the server has never been used.
func (r *Registry) LastUsed(server string) (time.Time, bool, error) {
	dir, err := r.Dir(server)
	if err != nil {
		return time.Time{}, false, err
	}
	path := filepath.Join(dir, LastUsedFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, api.NewIOError("read", path, err)
	}
	if len(data) != lastUsedSize {
		return time.Time{}, false, &api.InvalidTimestampFileError{Path: path, Size: len(data)}
	}

	secs := binary.LittleEndian.Uint64(data)
	if secs > math.MaxInt64 {
		return time.Time{}, false, &api.InvalidTimestampFileError{Path: path, Size: len(data)}
	}
	return time.Unix(int64(secs), 0), true, nil
}

// LastUsedAge returns the formatted time since the server was last used.
// The boolean is false when there is no record.
func (r *Registry) LastUsedAge(server string) (string, bool, error) {
	t, ok, err := r.LastUsed(server)
	if err != nil || !ok {
		return "", ok, err
	}
	return FormatAge(Age(t, r.clock.Now())), true, nil
}

// Age returns the time elapsed since recorded. A recorded time in the future
// counts as no time elapsed.
func Age(recorded, now time.Time) time.Duration {
	d := now.Sub(recorded)
	if d < 0 {
		return 0
	}
	return d
}

// FormatAge renders d using the coarsest unit that applies and every
// non-zero unit below it, e.g. "2y 3d 4h 5m 6s", "1h 30s" or "0s".
func FormatAge(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	units := []struct {
		size   time.Duration
		suffix string
	}{
		{year, "y"},
		{24 * time.Hour, "d"},
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
	}

	var parts []string
	for _, u := range units {
		n := d / u.size
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, u.suffix))
			d -= n * u.size
		}
	}
	return strings.Join(parts, " ")
}
