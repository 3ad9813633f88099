package forward

import (
	"strings"

	"github.com/voxrelay/voxrelay/internal/shellquote"
)

// Placeholder is the literal marker in a command template that gets
// replaced with the quoted transcript.
const Placeholder = "{transcript}"

// Render substitutes every occurrence of Placeholder in template with the
// shell-quoted transcript. A template without the placeholder is returned
// unchanged: the template author has opted out of transcript injection and
// the transcript is dropped.
func Render(template, transcript string) string {
	if !strings.Contains(template, Placeholder) {
		return template
	}
	return strings.ReplaceAll(template, Placeholder, shellquote.Quote(transcript))
}
