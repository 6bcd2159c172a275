// Package models defines the data objects shared across nuprompt packages.
package models

import "time"

// NoHeadRef is shown in place of a ref name when HEAD cannot be resolved.
const NoHeadRef = "NO HEAD"

// GitSummary condenses the repository state shown in the prompt.
type GitSummary struct {
	RefName          string
	IndexModified    bool
	WorktreeModified bool
	UntrackedFiles   bool
}

// Dirty reports whether any of the dirty indicators is set.
func (g GitSummary) Dirty() bool {
	return g.IndexModified || g.WorktreeModified || g.UntrackedFiles
}

// PromptContext carries the already-resolved inputs of a single render.
type PromptContext struct {
	ExitCode   string         // empty when the previous command succeeded
	Elapsed    *time.Duration // nil when no elapsed time is available
	User       string
	WorkingDir string      // already shortened
	Git        *GitSummary // nil outside a repository or when git is disabled
}
