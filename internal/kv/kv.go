// Package kv implements a depth-one key/value queue: Put replaces the value
// for a key and Take removes and returns it. Values written by one process
// are visible to the next one, so the file backend is the bridge between the
// pre-command and post-command invocations.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned for keys that cannot be mapped to a storage name.
var ErrInvalidKey = errors.New("invalid key")

// Store is a depth-one queue per key.
type Store interface {
	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error
	// Take returns the value stored under key and removes it. ok is false
	// when nothing is stored.
	Take(key string) (value []byte, ok bool, err error)
}

// ValidateKey rejects keys that are empty or contain path separators.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." || strings.ContainsRune(key, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
