package validate

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips disallowed HTML from user-supplied rich text. The rich
// policy keeps common user-generated-content markup; the strict policy
// removes every tag and is used for plain-text previews.
type Sanitizer struct {
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewSanitizer builds the sanitization policies once; the result is
// read-only and safe for concurrent use.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		rich:   bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// RichText removes disallowed tags and attributes, keeping benign
// formatting markup.
func (s *Sanitizer) RichText(in string) string {
	return s.rich.Sanitize(in)
}

// Preview produces a plain-text excerpt for list views: the first max
// characters of content with all tags stripped and entities decoded.
// Computed at read time, never stored.
func (s *Sanitizer) Preview(content string, max int) string {
	runes := []rune(content)
	if len(runes) > max {
		content = string(runes[:max])
	}
	return html.UnescapeString(s.strict.Sanitize(content))
}
