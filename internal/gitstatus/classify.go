// Package gitstatus turns raw repository status into the dirty indicators
// shown in the prompt.
package gitstatus

import "github.com/chmouel/nuprompt/internal/models"

const (
	worktreeDirty = models.WorktreeModified | models.WorktreeDeleted |
		models.WorktreeTypeChange | models.WorktreeRenamed
	indexDirty = models.IndexNew | models.IndexModified |
		models.IndexTypeChange | models.IndexRenamed | models.IndexDeleted
)

// Classify folds the per-path flags of a snapshot into the three dirty
// indicators. Each indicator is the union over all paths, so iteration order
// does not matter and an empty snapshot yields all false.
func Classify(snapshot []models.StatusFile) (indexModified, worktreeModified, untrackedFiles bool) {
	for _, f := range snapshot {
		if f.Flags.Intersects(worktreeDirty) {
			worktreeModified = true
		}
		if f.Flags.Intersects(indexDirty) {
			indexModified = true
		}
		if f.Flags.Contains(models.WorktreeNew) {
			untrackedFiles = true
		}
	}
	return indexModified, worktreeModified, untrackedFiles
}
