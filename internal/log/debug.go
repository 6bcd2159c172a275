// Package log buffers diagnostics until the verbosity filter is known, then
// either discards them or sends them to stderr or a file. Prompt output never
// goes through here.
package log

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// DebugLogger handles debug logging to a writer and/or buffering.
// It implements io.Writer to be compatible with standard log.Logger.
type DebugLogger struct {
	mu      sync.Mutex
	out     io.Writer
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	// stdLogger wraps our custom writer to provide standard log formatting
	stdLogger = log.New(globalDebugLogger, "nuprompt: ", log.LstdFlags|log.Lmicroseconds)

	// stderr is swapped by tests.
	stderr io.Writer = os.Stderr
)

// Write implements io.Writer.
// It writes to the configured sink if set, otherwise appends to the buffer.
func (l *DebugLogger) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.discard {
		return len(p), nil
	}

	if l.out != nil {
		n, err = l.out.Write(p)
		if l.file != nil {
			_ = l.file.Sync()
		}
		return n, err
	}

	// p might be reused by the caller
	b := make([]byte, len(p))
	copy(b, p)
	l.buffer = append(l.buffer, b...)
	return len(p), nil
}

// Enabled reports whether a verbosity filter value turns debug output on.
func Enabled(filter string) bool {
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "1", "true", "yes", "on", "debug", "trace":
		return true
	}
	return false
}

// Configure resolves the buffered state. When the filter disables logging all
// buffered and future messages are dropped. Otherwise messages go to path, or
// to stderr when path is empty.
func Configure(filter, path string) error {
	if !Enabled(filter) {
		return SetFile("")
	}
	if path != "" {
		return SetFile(path)
	}
	setWriter(stderr)
	return nil
}

func setWriter(w io.Writer) {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	closeFileLocked()
	globalDebugLogger.out = w
	globalDebugLogger.discard = false
	flushLocked()
}

// SetFile sets the debug log file path. Creates the file if it doesn't exist.
// If path is empty, discards all buffered logs and future logs.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	closeFileLocked()

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return err
	}

	globalDebugLogger.file = f
	globalDebugLogger.out = f
	globalDebugLogger.discard = false
	flushLocked()
	return nil
}

func closeFileLocked() {
	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}
	globalDebugLogger.out = nil
}

func flushLocked() {
	if len(globalDebugLogger.buffer) == 0 {
		return
	}
	_, _ = globalDebugLogger.out.Write(globalDebugLogger.buffer)
	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Sync()
	}
	globalDebugLogger.buffer = nil
}

// Printf writes a formatted debug message via the standard logger.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message via the standard logger.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file == nil {
		return nil
	}

	err := globalDebugLogger.file.Close()
	globalDebugLogger.file = nil
	globalDebugLogger.out = nil
	globalDebugLogger.discard = true
	return err
}
