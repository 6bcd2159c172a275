// Package elapsed measures the wall-clock duration of a shell command across
// the two invocations that surround it.
package elapsed

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/chmouel/nuprompt/internal/kv"
	"github.com/chmouel/nuprompt/internal/log"
)

// RecordSize is the width of a stored record: a big-endian uint64 tick count.
const RecordSize = 8

var (
	// ErrNotFound is returned when no start record exists for a pid.
	ErrNotFound = errors.New("no start record")
	// ErrCorruptRecord is returned when a start record cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt start record")
)

// Clock yields monotonic nanosecond ticks.
type Clock interface {
	Now() (uint64, error)
}

// Store records a start tick per pid and turns it into a duration later.
type Store struct {
	kv    kv.Store
	clock Clock
}

// NewStore builds a Store over backend using clock as the tick source.
func NewStore(backend kv.Store, clock Clock) *Store {
	if clock == nil {
		clock = MonotonicClock{}
	}
	return &Store{kv: backend, clock: clock}
}

// RecordStart persists the current tick under pid, replacing any earlier record.
func (s *Store) RecordStart(pid string) error {
	now, err := s.clock.Now()
	if err != nil {
		return fmt.Errorf("failed to read clock: %w", err)
	}
	var buf [RecordSize]byte
	binary.BigEndian.PutUint64(buf[:], now)
	if err := s.kv.Put(pid, buf[:]); err != nil {
		return err
	}
	log.Printf("elapsed: recorded start tick %d for pid %s", now, pid)
	return nil
}

// ConsumeElapsed removes the record for pid and returns the time since it was
// written. Callers treat ErrNotFound and ErrCorruptRecord as "no elapsed time".
func (s *Store) ConsumeElapsed(pid string) (time.Duration, error) {
	data, ok, err := s.kv.Take(pid)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNotFound
	}
	if len(data) != RecordSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrCorruptRecord, len(data))
	}
	start := binary.BigEndian.Uint64(data)

	now, err := s.clock.Now()
	if err != nil {
		return 0, fmt.Errorf("failed to read clock: %w", err)
	}
	// A start in the future means the record outlived a reboot.
	if start > now {
		return 0, fmt.Errorf("%w: start tick %d after now %d", ErrCorruptRecord, start, now)
	}
	return time.Duration(now - start), nil //nolint:gosec
}

// IsSoft reports whether err only means that no elapsed time is available.
func IsSoft(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorruptRecord)
}
