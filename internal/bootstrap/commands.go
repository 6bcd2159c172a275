package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/chmouel/nuprompt/internal/buildinfo"
	"github.com/chmouel/nuprompt/internal/config"
	"github.com/chmouel/nuprompt/internal/elapsed"
	"github.com/chmouel/nuprompt/internal/gitstatus"
	"github.com/chmouel/nuprompt/internal/log"
	"github.com/chmouel/nuprompt/internal/models"
	"github.com/chmouel/nuprompt/internal/prompt"
	"github.com/chmouel/nuprompt/internal/theme"
	"github.com/muesli/termenv"
	urfavecli "github.com/urfave/cli/v3"
)

func ps0Command() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "ps0",
		Usage:     "Record the start of a command (pre-command hook)",
		ArgsUsage: "<pid>",
		Action:    runPS0,
	}
}

func ps1Command() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "ps1",
		Usage:     "Print the PS1 assignment for the next prompt (post-command hook)",
		ArgsUsage: "<pid> <exit_code>",
		Action:    runPS1,
	}
}

func versionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "version",
		Usage: "Show version and build information",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			_, err := io.WriteString(cmd.Root().Writer, buildinfo.Summary())
			return err
		},
	}
}

// runHook prints the shell snippet installing the ps0/ps1 hooks.
func runHook(_ context.Context, cmd *urfavecli.Command) error {
	if cmd.Args().Len() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, cmd.Args().First())
	}
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	exe, err := executablePath()
	if err != nil {
		log.Printf("error: cannot resolve executable path: %v", err)
		exe = cmd.Root().Name
	}

	snippet, err := hookSnippet(s.cfg.Shell, exe)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.Root().Writer, snippet)
	return err
}

func runPS0(_ context.Context, cmd *urfavecli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("%w: ps0 expects <pid>", ErrUsage)
	}
	pid, err := pidArg(cmd, 0)
	if err != nil {
		return err
	}
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	if err := s.elapsedStore().RecordStart(pid); err != nil {
		log.Printf("error: record start for %s: %v", pid, err)
		return fmt.Errorf("failed to record command start: %w", err)
	}
	log.Printf("ok: recorded start for %s", pid)
	return nil
}

func runPS1(ctx context.Context, cmd *urfavecli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("%w: ps1 expects <pid> <exit_code>", ErrUsage)
	}
	pid, err := pidArg(cmd, 0)
	if err != nil {
		return err
	}
	exitCode := cmd.Args().Get(1)
	if _, err := strconv.Atoi(exitCode); err != nil {
		return fmt.Errorf("%w: exit code %q is not an integer", ErrUsage, exitCode)
	}
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	pc := models.PromptContext{
		ExitCode: exitCode,
		Elapsed:  s.consumeElapsed(pid),
		User:     currentUser(),
	}

	cwd := s.workingDir()
	if cwd != "" && s.cfg.Git {
		if p, err := newProvider(s.cfg.GitBackend); err != nil {
			log.Printf("error: %v", err)
		} else {
			pc.Git = gitstatus.Summarize(ctx, p, cwd)
		}
	}
	pc.WorkingDir = prompt.Shorten(cwd, s.env.Home)

	return prompt.Render(cmd.Root().Writer, pc, s.renderOptions())
}

// consumeElapsed never fails the prompt: every error leaves the segment out.
func (s *session) consumeElapsed(pid string) *time.Duration {
	d, err := s.elapsedStore().ConsumeElapsed(pid)
	switch {
	case errors.Is(err, elapsed.ErrNotFound):
		log.Printf("no start record for %s", pid)
		return nil
	case elapsed.IsSoft(err):
		log.Printf("ignoring start record for %s: %v", pid, err)
		return nil
	case err != nil:
		log.Printf("error: read start record for %s: %v", pid, err)
		return nil
	}

	log.Printf("elapsed for %s: %s", pid, d)
	if !s.cfg.ShowElapsed || d < s.cfg.ElapsedThreshold {
		return nil
	}
	return &d
}

// workingDir prefers the kernel's view of the cwd and falls back to $PWD.
func (s *session) workingDir() string {
	cwd, err := osGetwd()
	if err == nil {
		return cwd
	}
	log.Printf("cannot read working directory: %v", err)
	if s.env.PWD != "" {
		log.Printf("using PWD: %s", s.env.PWD)
	}
	return s.env.PWD
}

func (s *session) renderOptions() prompt.Options {
	return prompt.Options{
		Color:   s.useColor(),
		Profile: colorProfile(s.cfg.ColorProfile),
		Theme:   theme.GetTheme(s.cfg.Theme),
		Shell:   s.cfg.Shell,
	}
}

func (s *session) useColor() bool {
	switch s.cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return !s.env.NoColor && isTerminal()
	}
}

func colorProfile(name string) termenv.Profile {
	switch name {
	case config.ProfileTrueColor:
		return termenv.TrueColor
	case config.ProfileANSI256:
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}
