package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment variables read by nuprompt.
const (
	EnvDisableGit = "NUPROMPT_DISABLE_GIT"
	EnvLog        = "NUPROMPT_LOG"
	EnvPWD        = "PWD"
	EnvHome       = "HOME"
	EnvNoColor    = "NO_COLOR"
	EnvRuntimeDir = "XDG_RUNTIME_DIR"
)

// LookupFn matches os.LookupEnv.
type LookupFn func(key string) (string, bool)

// Environment is the process environment resolved once per invocation.
type Environment struct {
	Home       string
	PWD        string
	DisableGit bool
	LogFilter  string
	NoColor    bool
	RuntimeDir string
}

// EnvironmentFrom snapshots the variables nuprompt consumes.
func EnvironmentFrom(lookup LookupFn) Environment {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	env := Environment{
		Home:       get(EnvHome),
		PWD:        get(EnvPWD),
		LogFilter:  get(EnvLog),
		RuntimeDir: get(EnvRuntimeDir),
	}
	if v := strings.TrimSpace(get(EnvDisableGit)); v != "" {
		env.DisableGit = coerceBool(v, true)
	}
	if _, ok := lookup(EnvNoColor); ok && get(EnvNoColor) != "" {
		env.NoColor = true
	}
	return env
}

// ApplyEnvironment lets the environment override file settings.
func (cfg *AppConfig) ApplyEnvironment(env Environment) {
	if env.DisableGit {
		cfg.Git = false
	}
}

// ResolveStateDir returns the directory for elapsed records: the configured
// one, else $XDG_RUNTIME_DIR, else the OS temp dir.
func (cfg *AppConfig) ResolveStateDir(env Environment) string {
	if cfg.StateDir != "" {
		if expanded, err := expandPath(cfg.StateDir); err == nil {
			return expanded
		}
		return cfg.StateDir
	}
	if env.RuntimeDir != "" {
		return filepath.Join(env.RuntimeDir, "nuprompt")
	}
	return os.TempDir()
}
