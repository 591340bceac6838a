// Package security strips markup from user-supplied free text before it is stored.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type TextSanitizer interface {
	// Sanitize removes every HTML element and attribute and trims surrounding space.
	Sanitize(s string) string
}

type textSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() TextSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

func (t *textSanitizer) Sanitize(s string) string {
	if s == "" {
		return ""
	}
	// StrictPolicy escapes the text it keeps; the API stores plain text.
	return strings.TrimSpace(html.UnescapeString(t.policy.Sanitize(s)))
}
