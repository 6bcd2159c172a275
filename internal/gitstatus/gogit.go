package gitstatus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/nuprompt/internal/log"
	"github.com/chmouel/nuprompt/internal/models"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// GoGitProvider reads repository state in-process with go-git.
type GoGitProvider struct {
	repos map[string]*git.Repository
}

// NewGoGitProvider returns a provider that caches opened repositories by path.
func NewGoGitProvider() *GoGitProvider {
	return &GoGitProvider{repos: make(map[string]*git.Repository)}
}

func (p *GoGitProvider) open(path string) (*git.Repository, error) {
	if repo, ok := p.repos[path]; ok {
		return repo, nil
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, path)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	p.repos[path] = repo
	return repo, nil
}

// Status returns every path whose staging or worktree state is not clean.
// go-git reads the repository's .gitignore files and .git/info/exclude; the
// system, global and XDG excludes are added here so ignored files match git.
func (p *GoGitProvider) Status(_ context.Context, path string) ([]models.StatusFile, error) {
	repo, err := p.open(path)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, fmt.Errorf("%w: bare repository", ErrNotARepository)
		}
		return nil, err
	}
	wt.Excludes = append(wt.Excludes, userExcludes()...)
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read status: %w", err)
	}

	files := make([]models.StatusFile, 0, len(status))
	for name, fs := range status {
		flags := goGitFlags(fs.Staging, fs.Worktree)
		if flags == 0 {
			continue
		}
		files = append(files, models.StatusFile{Filename: name, Flags: flags})
	}
	log.Printf("go-git: %d changed paths under %s", len(files), path)
	return files, nil
}

// userExcludes loads the ignore patterns that live outside the repository:
// core.excludesfile from /etc/gitconfig and ~/.gitconfig, then the default
// $XDG_CONFIG_HOME/git/ignore. Unreadable sources are skipped.
func userExcludes() []gitignore.Pattern {
	rootFS := osfs.New("/")

	var patterns []gitignore.Pattern
	if ps, err := gitignore.LoadSystemPatterns(rootFS); err != nil {
		log.Printf("go-git: system excludes: %v", err)
	} else {
		patterns = append(patterns, ps...)
	}
	if ps, err := gitignore.LoadGlobalPatterns(rootFS); err != nil {
		log.Printf("go-git: global excludes: %v", err)
	} else {
		patterns = append(patterns, ps...)
	}
	if path := xdgIgnoreFile(); path != "" {
		ps, err := readIgnoreFile(path)
		if err != nil {
			log.Printf("go-git: %s: %v", path, err)
		}
		patterns = append(patterns, ps...)
	}
	return patterns
}

func xdgIgnoreFile() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "git", "ignore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "git", "ignore")
}

// readIgnoreFile parses a gitignore-format file. A missing file yields no
// patterns and no error.
func readIgnoreFile(path string) ([]gitignore.Pattern, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns, scanner.Err()
}

// HeadRef returns the short name of HEAD, or "HEAD" when detached.
func (p *GoGitProvider) HeadRef(_ context.Context, path string) (string, error) {
	repo, err := p.open(path)
	if err != nil {
		return "", err
	}
	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", fmt.Errorf("%w: %v", ErrNoHead, err)
		}
		return "", err
	}
	return ref.Name().Short(), nil
}

func goGitFlags(staging, worktree git.StatusCode) models.StatusFlag {
	var flags models.StatusFlag

	switch staging {
	case git.Added, git.Copied:
		flags |= models.IndexNew
	case git.Modified:
		flags |= models.IndexModified
	case git.Deleted:
		flags |= models.IndexDeleted
	case git.Renamed:
		flags |= models.IndexRenamed
	case git.UpdatedButUnmerged:
		flags |= models.IndexModified
	}

	switch worktree {
	case git.Untracked:
		flags |= models.WorktreeNew
	case git.Modified:
		flags |= models.WorktreeModified
	case git.Deleted:
		flags |= models.WorktreeDeleted
	case git.Renamed:
		flags |= models.WorktreeRenamed
	case git.UpdatedButUnmerged:
		flags |= models.WorktreeModified
	}

	return flags
}
