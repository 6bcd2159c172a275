package prompt

import "strings"

const escapedQuote = `'\''`

// Escape makes s safe inside a single-quoted shell string: every single quote
// closes the quoting, emits an escaped quote and reopens it. The transform is
// byte-wise, so input in any encoding survives unchanged otherwise.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", escapedQuote)
}

// escapePercent doubles % so zsh prompt expansion prints it literally.
func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
