package models

import "strings"

// StatusFlag is a bit set of per-path repository status flags.
type StatusFlag uint16

// Status flags reported for a single path.
const (
	WorktreeNew StatusFlag = 1 << iota
	WorktreeModified
	WorktreeDeleted
	WorktreeTypeChange
	WorktreeRenamed
	IndexNew
	IndexModified
	IndexDeleted
	IndexTypeChange
	IndexRenamed
)

var statusFlagNames = []struct {
	flag StatusFlag
	name string
}{
	{WorktreeNew, "worktree-new"},
	{WorktreeModified, "worktree-modified"},
	{WorktreeDeleted, "worktree-deleted"},
	{WorktreeTypeChange, "worktree-typechange"},
	{WorktreeRenamed, "worktree-renamed"},
	{IndexNew, "index-new"},
	{IndexModified, "index-modified"},
	{IndexDeleted, "index-deleted"},
	{IndexTypeChange, "index-typechange"},
	{IndexRenamed, "index-renamed"},
}

// Intersects reports whether any flag of other is also set in f.
func (f StatusFlag) Intersects(other StatusFlag) bool {
	return f&other != 0
}

// Contains reports whether every flag of other is set in f.
func (f StatusFlag) Contains(other StatusFlag) bool {
	return f&other == other
}

func (f StatusFlag) String() string {
	if f == 0 {
		return "current"
	}
	var names []string
	for _, n := range statusFlagNames {
		if f.Contains(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// StatusFile represents a file entry from git status.
type StatusFile struct {
	Filename string
	Flags    StatusFlag
}
