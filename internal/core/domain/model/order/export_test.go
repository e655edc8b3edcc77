package order

import (
	"testing"
	"time"
)

// SetClock replaces the aggregate clock for the duration of a test.
func SetClock(t testing.TB, clock func() time.Time) {
	t.Helper()
	previous := now
	now = clock
	t.Cleanup(func() { now = previous })
}
