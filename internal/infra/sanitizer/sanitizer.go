// Package sanitizer strips markup from profile free text before it is stored.
package sanitizer

import (
	"html"
	"strings"

	"agora/internal/domain/service"

	"github.com/microcosm-cc/bluemonday"
)

// StrictSanitizer removes every HTML element and attribute. The policy is
// safe for concurrent use.
type StrictSanitizer struct {
	policy *bluemonday.Policy
}

// New returns the sanitizer used for display names and bios.
func New() service.TextSanitizer {
	return &StrictSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize returns input as plain text. Entities escaped by the policy are
// decoded again since the value is stored as text, not HTML.
func (s *StrictSanitizer) Sanitize(input string) string {
	if !strings.ContainsAny(input, "<>&") {
		return input
	}

	return html.UnescapeString(s.policy.Sanitize(input))
}
