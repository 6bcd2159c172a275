package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/chmouel/nuprompt/internal/buildinfo"
	"github.com/chmouel/nuprompt/internal/config"
	"github.com/chmouel/nuprompt/internal/elapsed"
	"github.com/chmouel/nuprompt/internal/gitstatus"
	"github.com/chmouel/nuprompt/internal/kv"
	"github.com/chmouel/nuprompt/internal/log"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrUsage marks invocations with missing or malformed arguments.
var ErrUsage = errors.New("usage error")

// Process hooks, replaced in tests.
var (
	lookupEnv      = config.LookupFn(os.LookupEnv)
	osGetwd        = os.Getwd
	executablePath = os.Executable
	currentUser    = lookupCurrentUser
	clock          = elapsed.Clock(elapsed.MonotonicClock{})
	newProvider    = gitstatus.NewProvider
	isTerminal     = stdioIsTerminal
)

// stdioIsTerminal reports whether stdout or stderr is a terminal. Under
// eval "$(nuprompt ps1 ...)" stdout is a pipe while stderr still reaches the
// terminal the prompt is drawn on.
func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) || term.IsTerminal(int(os.Stderr.Fd()))
}

// Run parses args and dispatches to the matching command.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defer func() { _ = log.Close() }()
	return newRootCommand(stdout, stderr).Run(ctx, args)
}

func newRootCommand(stdout, stderr io.Writer) *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "nuprompt",
		Usage:   "Render a shell prompt with git status and command timing",
		Version: buildinfo.Version(),
		Flags:   globalFlags(),
		Action:  runHook,

		EnableShellCompletion: true,

		Writer:    stdout,
		ErrWriter: stderr,

		Commands: []*urfavecli.Command{
			ps0Command(),
			ps1Command(),
			versionCommand(),
		},
	}
}

// session is the configuration resolved for a single invocation.
type session struct {
	cfg *config.AppConfig
	env config.Environment
}

// loadSession loads the config file, then applies the environment, then -C
// overrides, then --shell. Debug logs emitted while loading are buffered until
// the log destination is known.
func loadSession(cmd *urfavecli.Command) (*session, error) {
	stderr := cmd.Root().ErrWriter
	env := config.EnvironmentFrom(lookupEnv)

	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	logPath := cfg.DebugLog
	if debugLog := cmd.String("debug-log"); debugLog != "" {
		logPath = debugLog
	}
	if err := log.Configure(env.LogFilter, logPath); err != nil {
		fmt.Fprintf(stderr, "Error opening debug log file %q: %v\n", logPath, err)
	}

	cfg.ApplyEnvironment(env)

	if overrides := cmd.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
	}

	if shell := cmd.String("shell"); shell != "" {
		switch shell {
		case config.ShellBash, config.ShellZsh:
			cfg.Shell = shell
		default:
			return nil, fmt.Errorf("%w: unsupported shell %q", ErrUsage, shell)
		}
	}

	return &session{cfg: cfg, env: env}, nil
}

func (s *session) elapsedStore() *elapsed.Store {
	dir := s.cfg.ResolveStateDir(s.env)
	log.Printf("elapsed records in %s", dir)
	return elapsed.NewStore(kv.NewFileStore(dir, config.RecordPrefix, config.RecordSuffix), clock)
}

// pidArg validates the shell pid argument used as the record key.
func pidArg(cmd *urfavecli.Command, i int) (string, error) {
	pid := cmd.Args().Get(i)
	if err := kv.ValidateKey(pid); err != nil {
		return "", fmt.Errorf("%w: invalid pid %q", ErrUsage, pid)
	}
	return pid, nil
}

func lookupCurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())
}
