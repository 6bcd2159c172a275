package gitstatus

import (
	"context"
	"errors"
	"fmt"

	"github.com/chmouel/nuprompt/internal/log"
	"github.com/chmouel/nuprompt/internal/models"
)

var (
	// ErrNotARepository is returned when path is not inside a repository.
	ErrNotARepository = errors.New("not a git repository")
	// ErrNoHead is returned when HEAD cannot be resolved, e.g. before the first commit.
	ErrNoHead = errors.New("no HEAD")
)

// Backend names accepted by NewProvider.
const (
	BackendGoGit = "go-git"
	BackendCLI   = "cli"
)

// Provider reads repository state for a directory.
type Provider interface {
	// Status lists the non-clean paths of the repository containing path.
	Status(ctx context.Context, path string) ([]models.StatusFile, error)
	// HeadRef returns the short name of the checked out branch or tag.
	HeadRef(ctx context.Context, path string) (string, error)
}

// NewProvider returns the provider registered under backend.
func NewProvider(backend string) (Provider, error) {
	switch backend {
	case "", BackendGoGit:
		return NewGoGitProvider(), nil
	case BackendCLI:
		return NewCLIProvider(), nil
	default:
		return nil, fmt.Errorf("unknown git backend %q", backend)
	}
}

// Summarize builds the prompt summary for path. It returns a nil summary when
// path is not in a repository or the status cannot be read. An unresolvable
// HEAD keeps the dirty flags and uses models.NoHeadRef as the ref name.
func Summarize(ctx context.Context, p Provider, path string) *models.GitSummary {
	log.Printf("looking for git repo from working directory: %s", path)

	files, err := p.Status(ctx, path)
	if err != nil {
		log.Printf("could not read repository status: %v", err)
		return nil
	}
	for _, f := range files {
		log.Printf("git status %s: %s", f.Filename, f.Flags)
	}

	summary := &models.GitSummary{}
	summary.IndexModified, summary.WorktreeModified, summary.UntrackedFiles = Classify(files)

	ref, err := p.HeadRef(ctx, path)
	switch {
	case err == nil:
		summary.RefName = ref
	case errors.Is(err, ErrNoHead):
		log.Printf("no head: %v", err)
		summary.RefName = models.NoHeadRef
	default:
		log.Printf("could not resolve head: %v", err)
		summary.RefName = models.NoHeadRef
	}
	return summary
}
