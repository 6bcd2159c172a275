//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package elapsed

import "time"

// MonotonicClock falls back to wall-clock nanoseconds where no system-wide
// monotonic clock is reachable. Both sides of the handshake use it, so the
// tick rate stays consistent.
type MonotonicClock struct{}

// Now returns the current tick count in nanoseconds.
func (MonotonicClock) Now() (uint64, error) {
	return uint64(time.Now().UnixNano()), nil //nolint:gosec
}
