// Package search implements the text-matching primitives behind prompt
// search. Matching is caseless substring containment under Unicode case
// folding, so "STRASSE" matches "straße" and Cyrillic or Greek queries fold
// correctly, not just ASCII.
package search

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Normalize trims surrounding whitespace and collapses internal whitespace
// runs to a single space. It does not change letter case; use Fold for that.
func Normalize(q string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(q), " ")
}

// Fold returns the Unicode case-folded form of s for caseless comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr occurs within s under Unicode case
// folding. An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(substr))
}

// MatchesAny reports whether query occurs (caselessly) in any of the given
// fields. Used to match a prompt's title, content, and tags in one pass.
func MatchesAny(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := Fold(query)
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}
