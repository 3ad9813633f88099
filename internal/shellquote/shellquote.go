// Package shellquote renders arbitrary text as a single safe shell word.
package shellquote

import "strings"

// Quote wraps s in single quotes so that it is always one shell word and
// never interpreted by the shell, regardless of content. Embedded single
// quotes are rendered as '\'' (close the quoted segment, emit a literal
// quote, reopen). This is the sole defense against injection from
// untrusted transcript text.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
