package prompt

import (
	"path/filepath"
	"strings"
)

// Shorten replaces a leading home directory in path with "~". The match is
// made on whole path components, so /home/alice2 is not under /home/alice.
// An empty home disables shortening.
func Shorten(path, home string) string {
	if path == "" || home == "" {
		return path
	}
	cleanHome := filepath.Clean(home)
	cleanPath := filepath.Clean(path)
	if cleanPath == cleanHome {
		return "~"
	}

	prefix := cleanHome
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(cleanPath, prefix) {
		return path
	}
	return filepath.Join("~", cleanPath[len(prefix):])
}
