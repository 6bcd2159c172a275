// Package config loads nuprompt configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chmouel/nuprompt/internal/log"
	"github.com/chmouel/nuprompt/internal/theme"
	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Color profiles.
const (
	ProfileANSI      = "ansi"
	ProfileANSI256   = "ansi256"
	ProfileTrueColor = "truecolor"
)

// Git backends, shells and file names understood by the configuration.
const (
	BackendGoGit = "go-git"
	BackendCLI   = "cli"

	ShellBash = "bash"
	ShellZsh  = "zsh"

	// RecordPrefix and RecordSuffix frame the pid in elapsed record names.
	RecordPrefix = "nuprompt."
	RecordSuffix = ".ps0"

	overridePrefix = "np."
)

// AppConfig defines the global nuprompt configuration options.
type AppConfig struct {
	Theme            string        // palette name, see theme.AvailableThemes
	Color            string        // "auto", "always" or "never"
	ColorProfile     string        // "ansi", "ansi256" or "truecolor"
	Git              bool          // scan the repository containing the cwd
	GitBackend       string        // "go-git" or "cli"
	StateDir         string        // directory holding elapsed records; empty resolves from the environment
	ShowElapsed      bool          // render the elapsed segment
	ElapsedThreshold time.Duration // hide elapsed times shorter than this
	Shell            string        // "bash" or "zsh"
	DebugLog         string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:        theme.DefaultName(),
		Color:        ColorAuto,
		ColorProfile: ProfileANSI,
		Git:          true,
		GitBackend:   BackendGoGit,
		ShowElapsed:  true,
		Shell:        ShellBash,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceFloat(value any, defaultVal float64) float64 {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case int:
		return float64(v)
	case float64:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if d, err := time.ParseDuration(text); err == nil {
			return d.Seconds()
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func coerceChoice(value any, current string, choices ...string) string {
	text, ok := value.(string)
	if !ok {
		return current
	}
	text = strings.ToLower(strings.TrimSpace(text))
	for _, c := range choices {
		if text == c {
			return c
		}
	}
	return current
}

// applyData overlays the recognised keys of data onto cfg.
func applyData(cfg *AppConfig, data map[string]any) {
	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}

	cfg.Color = coerceChoice(data["color"], cfg.Color, ColorAuto, ColorAlways, ColorNever)
	cfg.ColorProfile = coerceChoice(data["color_profile"], cfg.ColorProfile, ProfileANSI, ProfileANSI256, ProfileTrueColor)
	cfg.Git = coerceBool(data["git"], cfg.Git)
	cfg.GitBackend = coerceChoice(data["git_backend"], cfg.GitBackend, BackendGoGit, BackendCLI)
	cfg.ShowElapsed = coerceBool(data["show_elapsed"], cfg.ShowElapsed)
	cfg.Shell = coerceChoice(data["shell"], cfg.Shell, ShellBash, ShellZsh)

	if _, ok := data["elapsed_threshold"]; ok {
		seconds := coerceFloat(data["elapsed_threshold"], cfg.ElapsedThreshold.Seconds())
		if seconds < 0 {
			seconds = 0
		}
		cfg.ElapsedThreshold = time.Duration(seconds * float64(time.Second))
	}

	if stateDir, ok := data["state_dir"].(string); ok {
		stateDir = strings.TrimSpace(stateDir)
		if stateDir != "" {
			cfg.StateDir = stateDir
		}
	}

	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	applyData(cfg, data)
	return cfg
}

// ApplyCLIOverrides applies repeatable key=value overrides. Keys may carry
// an "np." prefix; values are decoded as YAML scalars.
func (cfg *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data := make(map[string]any, len(overrides))
	for _, override := range overrides {
		key, value, found := strings.Cut(override, "=")
		key = strings.TrimPrefix(strings.TrimSpace(key), overridePrefix)
		if !found || key == "" {
			return fmt.Errorf("invalid config override %q, expected key=value", override)
		}
		var decoded any
		if err := yaml.Unmarshal([]byte(value), &decoded); err != nil || decoded == nil {
			decoded = value
		}
		data[key] = decoded
	}
	applyData(cfg, data)
	return nil
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration from a YAML file.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Join(getConfigDir(), "nuprompt")
	configBase = filepath.Clean(configBase)

	var paths []string

	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		if !isPathWithin(configBase, absPath) {
			return DefaultConfig(), fmt.Errorf("config path must reside inside %s", configBase)
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path is constrained to the config directory after validation
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
			return DefaultConfig(), nil
		}

		log.Printf("config: loaded %s", path)
		return parseConfig(yamlData), nil
	}

	return DefaultConfig(), nil
}

// expandPath expands a leading "~" or "~/" to the home directory and then
// environment variables. "~user" forms are left untouched.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

func isPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range theme.AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}
