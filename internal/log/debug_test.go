package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDebugLogger(t *testing.T) func() {
	t.Helper()

	globalDebugLogger.mu.Lock()
	prevOut := globalDebugLogger.out
	prevFile := globalDebugLogger.file
	prevBuffer := append([]byte(nil), globalDebugLogger.buffer...)
	prevDiscard := globalDebugLogger.discard
	globalDebugLogger.out = nil
	globalDebugLogger.file = nil
	globalDebugLogger.buffer = nil
	globalDebugLogger.discard = false
	globalDebugLogger.mu.Unlock()
	prevStderr := stderr

	return func() {
		globalDebugLogger.mu.Lock()
		if globalDebugLogger.file != nil {
			_ = globalDebugLogger.file.Close()
		}
		globalDebugLogger.out = prevOut
		globalDebugLogger.file = prevFile
		globalDebugLogger.buffer = prevBuffer
		globalDebugLogger.discard = prevDiscard
		globalDebugLogger.mu.Unlock()
		stderr = prevStderr
	}
}

func TestEnabled(t *testing.T) {
	for _, v := range []string{"1", "true", "debug", "TRACE", " on "} {
		assert.True(t, Enabled(v), v)
	}
	for _, v := range []string{"", "0", "off", "warn", "info"} {
		assert.False(t, Enabled(v), v)
	}
}

func TestConfigureDisabledDropsBuffer(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	Printf("buffered %d", 1)
	require.NoError(t, Configure("", ""))

	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	assert.True(t, globalDebugLogger.discard)
	assert.Empty(t, globalDebugLogger.buffer)
}

func TestConfigureStderrFlushesBuffer(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	var buf bytes.Buffer
	stderr = &buf

	Printf("before configure")
	require.NoError(t, Configure("debug", ""))
	Println("after configure")

	assert.Contains(t, buf.String(), "before configure")
	assert.Contains(t, buf.String(), "after configure")
	assert.Contains(t, buf.String(), "nuprompt: ")
}

func TestConfigureFile(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	path := filepath.Join(t.TempDir(), "debug.log")
	Printf("early message")
	require.NoError(t, Configure("1", path))
	Printf("late message")
	require.NoError(t, Close())

	// #nosec G304 -- test file lives in t.TempDir()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "early message")
	assert.Contains(t, string(data), "late message")
}

func TestSetFileFailureDiscardsLogs(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	unwritableDir := t.TempDir()
	if err := os.Chmod(unwritableDir, 0o500); err != nil { //nolint:gosec
		t.Fatalf("set directory permissions: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(unwritableDir, 0o700) //nolint:gosec
	})
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	logPath := filepath.Join(unwritableDir, "debug.log")
	if err := SetFile(logPath); err == nil {
		t.Fatalf("expected SetFile to fail for %q", logPath)
	}

	globalDebugLogger.mu.Lock()
	discard := globalDebugLogger.discard
	bufferLen := len(globalDebugLogger.buffer)
	globalDebugLogger.mu.Unlock()

	if !discard {
		t.Fatalf("expected discard to be enabled after SetFile failure")
	}
	if bufferLen != 0 {
		t.Fatalf("expected buffer to be cleared after SetFile failure")
	}

	Printf("should be discarded")

	globalDebugLogger.mu.Lock()
	bufferLen = len(globalDebugLogger.buffer)
	globalDebugLogger.mu.Unlock()

	if bufferLen != 0 {
		t.Fatalf("expected buffer to remain empty after logging")
	}
}
