// Package prompt assembles the PS1 assignment printed after every command.
package prompt

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/nuprompt/internal/models"
	"github.com/chmouel/nuprompt/internal/theme"
	"github.com/muesli/termenv"
)

// Supported shells.
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
)

const (
	openMarker  = "PS1='["
	closeMarker = " > '"
)

var sgrSequence = regexp.MustCompile("\x1b\\[[0-9;]*m")

// Options control how a prompt is rendered. Color is resolved once by the
// caller; when false no escape sequence is written at all.
type Options struct {
	// Color is decided by the dispatcher: in auto mode it is set when NO_COLOR
	// is unset and stdout or stderr is a terminal, since stdout is a pipe
	// under eval "$(nuprompt ps1 ...)".
	Color   bool
	Profile termenv.Profile
	Theme   *theme.Theme
	Shell   string
}

// FormatElapsed renders d as seconds with two decimals, e.g. "2.50s".
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// DirtySuffix returns ":" followed by s, d and u for the index, worktree and
// untracked indicators, or nothing when the repository is clean.
func DirtySuffix(g models.GitSummary) string {
	if !g.Dirty() {
		return ""
	}
	var b strings.Builder
	b.WriteByte(':')
	if g.IndexModified {
		b.WriteByte('s')
	}
	if g.WorktreeModified {
		b.WriteByte('d')
	}
	if g.UntrackedFiles {
		b.WriteByte('u')
	}
	return b.String()
}

type styler struct {
	color     bool
	shell     string
	attention lipgloss.Style
	info      lipgloss.Style
	identity  lipgloss.Style
	highlight lipgloss.Style
}

func newStyler(opts Options) *styler {
	s := &styler{color: opts.Color, shell: opts.Shell}
	if !opts.Color {
		return s
	}

	th := opts.Theme
	if th == nil {
		th = theme.ANSI()
	}
	profile := opts.Profile
	if profile == termenv.Ascii {
		profile = termenv.ANSI
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	s.attention = r.NewStyle().Foreground(th.Attention)
	s.info = r.NewStyle().Foreground(th.Info)
	s.identity = r.NewStyle().Foreground(th.Identity).Bold(true)
	s.highlight = r.NewStyle().Foreground(th.Highlight)
	return s
}

// paint applies st and marks every escape sequence as non-printing so the
// shell's line editor measures the prompt correctly.
func (s *styler) paint(st lipgloss.Style, text string) string {
	if !s.color || text == "" {
		return text
	}
	open, closing := `\[`, `\]`
	if s.shell == ShellZsh {
		open, closing = "%{", "%}"
	}
	return sgrSequence.ReplaceAllStringFunc(st.Render(text), func(seq string) string {
		return open + seq + closing
	})
}

// quote escapes a raw segment for the single-quoted assignment, and for zsh
// prompt expansion when needed.
func (s *styler) quote(text string) string {
	text = Escape(text)
	if s.shell == ShellZsh {
		text = escapePercent(text)
	}
	return text
}

// Render writes the prompt assignment for pc to w. The line is assembled in
// memory and handed to w in a single write.
func Render(w io.Writer, pc models.PromptContext, opts Options) error {
	s := newStyler(opts)
	segments := make([]string, 0, 5)

	if pc.ExitCode != "" && pc.ExitCode != "0" {
		segments = append(segments, s.paint(s.attention, pc.ExitCode))
	}
	if pc.Elapsed != nil {
		segments = append(segments, s.paint(s.info, FormatElapsed(*pc.Elapsed)))
	}
	segments = append(segments, s.paint(s.identity, pc.User))
	if pc.Git != nil {
		segments = append(segments, s.paint(s.highlight, s.quote(pc.Git.RefName)+DirtySuffix(*pc.Git)))
	}
	segments = append(segments, s.quote(pc.WorkingDir))

	var b strings.Builder
	b.WriteString(openMarker)
	b.WriteString(strings.Join(segments, " "))
	b.WriteString(closeMarker)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write prompt: %w", err)
	}
	return nil
}
