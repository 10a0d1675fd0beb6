// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-authored text before storage.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy removes all HTML; API content is plain text.
var policy = bluemonday.StrictPolicy()

// Text sanitizes user-authored text (post bodies, comments, bios, review
// comments) and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
