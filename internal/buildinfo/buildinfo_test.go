package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetters(t *testing.T) {
	Set("1.2.3", "abc123", "2025-01-01", "ci")

	assert.Equal(t, "1.2.3", Version())
	assert.Equal(t, "abc123", Commit())
	assert.Equal(t, "2025-01-01", Date())
	assert.Equal(t, "ci", BuiltBy())
}

func TestEnrichFillsBuilder(t *testing.T) {
	Set("dev", "none", "unknown", "unknown")
	Enrich()

	// test binaries always carry the Go version
	assert.NotEqual(t, "unknown", BuiltBy())
}

func TestEnrichPreservesExplicitValues(t *testing.T) {
	Set("v1.0.0", "deadbeef", "2025-06-01", "goreleaser")
	Enrich()

	assert.Equal(t, "deadbeef", Commit())
	assert.Equal(t, "goreleaser", BuiltBy())
}

func TestSummary(t *testing.T) {
	Set("v0.3.0", "cafe", "2026-01-02", "make")
	assert.Equal(t, "nuprompt version v0.3.0\ncommit: cafe\nbuilt at: 2026-01-02\nbuilt by: make\n", Summary())
}
