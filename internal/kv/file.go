package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chmouel/nuprompt/internal/log"
)

const (
	defaultDirPerms  = 0o700
	defaultFilePerms = 0o600
)

// FileStore keeps one file per key inside Dir, named Prefix+key+Suffix.
// Writes go to a temporary file that is renamed into place, and Take renames
// the record away before reading it, so readers never see partial records and
// a record is consumed at most once.
type FileStore struct {
	Dir    string
	Prefix string
	Suffix string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir, prefix, suffix string) *FileStore {
	return &FileStore{Dir: dir, Prefix: prefix, Suffix: suffix}
}

// Path returns the file backing key.
func (s *FileStore) Path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, s.Prefix+key+s.Suffix), nil
}

// Put atomically replaces the record for key.
func (s *FileStore) Put(key string, value []byte) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, defaultDirPerms); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmp.Chmod(defaultFilePerms); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to store record: %w", err)
	}

	log.Printf("kv: stored %d bytes in %s", len(value), path)
	return nil
}

// Take consumes the record for key.
func (s *FileStore) Take(key string) ([]byte, bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, false, err
	}

	claimed := path + ".taken." + strconv.Itoa(os.Getpid())
	if err := os.Rename(path, claimed); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to claim record: %w", err)
	}
	defer func() { _ = os.Remove(claimed) }()

	// #nosec G304 -- claimed is derived from a validated key inside Dir
	data, err := os.ReadFile(claimed)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read record: %w", err)
	}

	log.Printf("kv: took %d bytes from %s", len(data), path)
	return data, true, nil
}
