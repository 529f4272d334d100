// Package names carries the best-effort cleanup that reduces a free-text
// personal name to "First Last". It strips decorative bullets, leading
// initials and middle initials. The heuristic is lossy: a genuine two-letter
// first name is indistinguishable from an initial.
package names

import (
	"regexp"
	"strings"
)

var (
	// "●J John", "● J. John", "•J John"
	bulletInitial = regexp.MustCompile(`^[●•○▪▫]\s*[A-Za-z]\.?\s+`)
	// "J. John", "J.  John"
	dottedInitial = regexp.MustCompile(`^[A-Za-z]\.\s+`)
	// "J John": initial, spaces, then a capitalized word
	spacedInitial = regexp.MustCompile(`^[A-Za-z]\s+([A-Z][a-z])`)
	// "JJohn": initial fused to a capitalized word
	fusedInitial = regexp.MustCompile(`^[A-Za-z]([A-Z][a-z])`)
	// initial plus any unicode whitespace run before a capitalized word
	unicodeSpacedInitial = regexp.MustCompile(`^[A-Za-z][\s\x{00A0}\x{2000}-\x{200B}]+([A-Z][a-z])`)
	// fallback: single letter, whitespace, then capitalized word(s)
	looseInitial = regexp.MustCompile(`^[A-Za-z]\s+([A-Z][a-zA-Z]+.*)$`)
	// interior " X " or " X. " token before a capitalized word
	middleInitial = regexp.MustCompile(`\s+[A-Za-z]\.?\s+([A-Z][a-z])`)
)

// Normalize reduces raw to a two-token first+last name. Empty input is
// returned unchanged.
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}

	cleaned := strings.TrimSpace(raw)
	before := cleaned

	cleaned = bulletInitial.ReplaceAllString(cleaned, "")
	cleaned = dottedInitial.ReplaceAllString(cleaned, "")
	cleaned = spacedInitial.ReplaceAllString(cleaned, "${1}")
	cleaned = fusedInitial.ReplaceAllString(cleaned, "${1}")
	cleaned = unicodeSpacedInitial.ReplaceAllString(cleaned, "${1}")
	if cleaned == before {
		cleaned = looseInitial.ReplaceAllString(cleaned, "${1}")
	}

	cleaned = middleInitial.ReplaceAllString(cleaned, " ${1}")

	parts := strings.Fields(cleaned)
	if len(parts) > 2 {
		cleaned = parts[0] + " " + parts[len(parts)-1]
	}

	return strings.TrimSpace(cleaned)
}
