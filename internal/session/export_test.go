package session

import "time"

// SetSleepForTest replaces the settle sleep and returns a restore function.
func SetSleepForTest(fn func(time.Duration)) func() {
	old := sleep
	sleep = fn
	return func() { sleep = old }
}
