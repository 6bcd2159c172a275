package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chmouel/nuprompt/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, theme.ANSIName, cfg.Theme)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, ProfileANSI, cfg.ColorProfile)
	assert.True(t, cfg.Git)
	assert.Equal(t, BackendGoGit, cfg.GitBackend)
	assert.True(t, cfg.ShowElapsed)
	assert.Zero(t, cfg.ElapsedThreshold)
	assert.Equal(t, ShellBash, cfg.Shell)
	assert.Empty(t, cfg.StateDir)
	assert.Empty(t, cfg.DebugLog)
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		defaultVal bool
		expected   bool
	}{
		{name: "nil uses default", input: nil, defaultVal: true, expected: true},
		{name: "bool", input: false, defaultVal: true, expected: false},
		{name: "int", input: 1, defaultVal: false, expected: true},
		{name: "yes", input: "yes", defaultVal: false, expected: true},
		{name: "off", input: " OFF ", defaultVal: true, expected: false},
		{name: "garbage uses default", input: "maybe", defaultVal: true, expected: true},
		{name: "float uses default", input: 1.5, defaultVal: false, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceBool(tt.input, tt.defaultVal))
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	assert.InDelta(t, 3.0, coerceFloat(3, 0), 1e-9)
	assert.InDelta(t, 0.5, coerceFloat(0.5, 0), 1e-9)
	assert.InDelta(t, 1.5, coerceFloat("1.5", 0), 1e-9)
	assert.InDelta(t, 2.0, coerceFloat("2s", 0), 1e-9)
	assert.InDelta(t, 0.25, coerceFloat("250ms", 0), 1e-9)
	assert.InDelta(t, 7.0, coerceFloat("soon", 7), 1e-9)
	assert.InDelta(t, 7.0, coerceFloat(nil, 7), 1e-9)
}

func TestParseConfig(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"theme":             "Nord",
		"color":             "never",
		"color_profile":     "truecolor",
		"git":               false,
		"git_backend":       "cli",
		"state_dir":         " /run/user/1000/np ",
		"show_elapsed":      "no",
		"elapsed_threshold": 1.5,
		"shell":             "zsh",
		"debug_log":         "/tmp/np.log",
	})

	assert.Equal(t, theme.NordName, cfg.Theme)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, ProfileTrueColor, cfg.ColorProfile)
	assert.False(t, cfg.Git)
	assert.Equal(t, BackendCLI, cfg.GitBackend)
	assert.Equal(t, "/run/user/1000/np", cfg.StateDir)
	assert.False(t, cfg.ShowElapsed)
	assert.Equal(t, 1500*time.Millisecond, cfg.ElapsedThreshold)
	assert.Equal(t, ShellZsh, cfg.Shell)
	assert.Equal(t, "/tmp/np.log", cfg.DebugLog)
}

func TestParseConfigInvalidValuesKeepDefaults(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"theme":             "neon",
		"color":             "sometimes",
		"git_backend":       "svn",
		"shell":             "fish",
		"elapsed_threshold": -4,
		"state_dir":         "   ",
	})

	def := DefaultConfig()
	assert.Equal(t, def.Theme, cfg.Theme)
	assert.Equal(t, def.Color, cfg.Color)
	assert.Equal(t, def.GitBackend, cfg.GitBackend)
	assert.Equal(t, def.Shell, cfg.Shell)
	assert.Zero(t, cfg.ElapsedThreshold)
	assert.Empty(t, cfg.StateDir)
}

func TestApplyCLIOverrides(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyCLIOverrides([]string{
		"np.git=false",
		"elapsed_threshold=2",
		"theme=dracula",
		"color=always",
		"state_dir=",
	}))

	assert.False(t, cfg.Git)
	assert.Equal(t, 2*time.Second, cfg.ElapsedThreshold)
	assert.Equal(t, theme.DraculaName, cfg.Theme)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.Empty(t, cfg.StateDir)

	assert.Error(t, cfg.ApplyCLIOverrides([]string{"novalue"}))
	assert.Error(t, cfg.ApplyCLIOverrides([]string{"=x"}))
}

func TestLoadConfigFromXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := filepath.Join(xdg, "nuprompt")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("theme: monokai\ngit_backend: cli\n"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, theme.MonokaiName, cfg.Theme)
	assert.Equal(t, BackendCLI, cfg.GitBackend)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "nuprompt")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: [unclosed"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOutsideConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	outside := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(outside, []byte("theme: nord\n"), 0o600))

	cfg, err := LoadConfig(outside)
	require.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "nuprompt")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, "work.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shell: zsh\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ShellZsh, cfg.Shell)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NP_TEST_DIR", "/srv/state")

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/state", filepath.Join(home, "state")},
		{"~bob/state", "~bob/state"},
		{"/var/~/x", "/var/~/x"},
		{"$NP_TEST_DIR/np", "/srv/state/np"},
	}
	for _, tt := range tests {
		got, err := expandPath(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestResolveStateDirKeepsTildeUser(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := DefaultConfig()
	cfg.StateDir = "~nobody/np"
	assert.Equal(t, "~nobody/np", cfg.ResolveStateDir(Environment{}))
}

func TestIsPathWithin(t *testing.T) {
	assert.True(t, isPathWithin("/a/b", "/a/b"))
	assert.True(t, isPathWithin("/a/b", "/a/b/c.yaml"))
	assert.False(t, isPathWithin("/a/b", "/a/bc"))
	assert.False(t, isPathWithin("/a/b", "/a"))
}

func TestNormalizeThemeName(t *testing.T) {
	assert.Equal(t, theme.DraculaName, NormalizeThemeName(" DRACULA "))
	assert.Empty(t, NormalizeThemeName("unknown"))
}
