package gitstatus

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chmouel/nuprompt/internal/log"
	"github.com/chmouel/nuprompt/internal/models"
)

// LookupPath is used to find executables in PATH. It's exposed as a package variable
// so tests can mock it and avoid depending on system binaries being installed.
var LookupPath = exec.LookPath

// CLIProvider reads repository state by running the git binary.
type CLIProvider struct {
	run func(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// NewCLIProvider returns a provider backed by the git executable.
func NewCLIProvider() *CLIProvider {
	return &CLIProvider{run: runGit}
}

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	bin, err := LookupPath("git")
	if err != nil {
		return nil, fmt.Errorf("git not found: %w", err)
	}
	command := "git " + strings.Join(args, " ")
	log.Printf("run: %s (cwd=%s)", command, dir)

	// #nosec G204 -- arguments come from this package, never from user input
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			log.Printf("error: %s (exit %d): %s", command, exitErr.ExitCode(), stderr)
			if strings.Contains(strings.ToLower(stderr), "not a git repository") {
				return nil, fmt.Errorf("%w: %s", ErrNotARepository, dir)
			}
			return nil, fmt.Errorf("%s: %w: %s", command, err, stderr)
		}
		return nil, err
	}
	log.Printf("ok: %s", command)
	return out, nil
}

// Status runs git status in porcelain v2 form and converts every entry.
func (p *CLIProvider) Status(ctx context.Context, path string) ([]models.StatusFile, error) {
	out, err := p.run(ctx, path,
		"--no-optional-locks", "status", "--porcelain=v2", "-z",
		"--untracked-files=normal", "--ignore-submodules=all")
	if err != nil {
		return nil, err
	}
	return parsePorcelainV2(string(out)), nil
}

// HeadRef returns the abbreviated name of HEAD, "HEAD" when detached.
func (p *CLIProvider) HeadRef(ctx context.Context, path string) (string, error) {
	out, err := p.run(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		if errors.Is(err, ErrNotARepository) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrNoHead, err)
	}
	ref := strings.TrimSpace(string(out))
	if ref == "" {
		return "", ErrNoHead
	}
	return ref, nil
}

// parsePorcelainV2 parses NUL separated `git status --porcelain=v2 -z` output.
func parsePorcelainV2(raw string) []models.StatusFile {
	var files []models.StatusFile
	entries := strings.Split(raw, "\x00")

	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if len(entry) < 2 {
			continue
		}

		switch entry[0] {
		case '1':
			// 1 XY sub mH mI mW hH hI path
			fields := strings.SplitN(entry, " ", 9)
			if len(fields) < 9 {
				continue
			}
			files = append(files, models.StatusFile{Filename: fields[8], Flags: xyFlags(fields[1])})
		case '2':
			// 2 XY sub mH mI mW hH hI Xscore path, then the original path
			fields := strings.SplitN(entry, " ", 10)
			i++
			if len(fields) < 10 {
				continue
			}
			files = append(files, models.StatusFile{Filename: fields[9], Flags: xyFlags(fields[1])})
		case 'u':
			// u XY sub m1 m2 m3 mW h1 h2 h3 path
			fields := strings.SplitN(entry, " ", 11)
			if len(fields) < 11 {
				continue
			}
			files = append(files, models.StatusFile{
				Filename: fields[10],
				Flags:    models.IndexModified | models.WorktreeModified,
			})
		case '?':
			files = append(files, models.StatusFile{Filename: entry[2:], Flags: models.WorktreeNew})
		}
	}
	return files
}

func xyFlags(xy string) models.StatusFlag {
	if len(xy) != 2 {
		return 0
	}
	var flags models.StatusFlag

	switch xy[0] {
	case 'A', 'C':
		flags |= models.IndexNew
	case 'M':
		flags |= models.IndexModified
	case 'D':
		flags |= models.IndexDeleted
	case 'T':
		flags |= models.IndexTypeChange
	case 'R':
		flags |= models.IndexRenamed
	}

	switch xy[1] {
	case 'A':
		flags |= models.WorktreeNew
	case 'M':
		flags |= models.WorktreeModified
	case 'D':
		flags |= models.WorktreeDeleted
	case 'T':
		flags |= models.WorktreeTypeChange
	case 'R':
		flags |= models.WorktreeRenamed
	}

	return flags
}
