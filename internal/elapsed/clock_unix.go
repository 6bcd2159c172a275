//go:build linux || darwin || freebsd || netbsd || openbsd

package elapsed

import "golang.org/x/sys/unix"

// MonotonicClock reads CLOCK_MONOTONIC. The clock is shared by every process
// of a boot session, so ticks recorded by one invocation can be compared
// with ticks read by another.
type MonotonicClock struct{}

// Now returns the current tick count in nanoseconds.
func (MonotonicClock) Now() (uint64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, err
	}
	return uint64(ts.Nano()), nil //nolint:gosec // monotonic time is never negative
}
