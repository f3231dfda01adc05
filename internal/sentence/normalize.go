package sentence

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Go's \s is ASCII only, \p{Zs} adds no-break and other Unicode spaces
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

	// abbreviationTail matches sentences whose final token is a dotted
	// abbreviation such as "bl.a." or "f.eks.".
	abbreviationTail = regexp.MustCompile(`\.[A-ZÆØÅa-zæøå]+\.$`)
)

const ellipsis = "..."

// Normalize replaces line breaks with spaces, collapses whitespace runs to a
// single space and strips surrounding spaces, tabs and newlines.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.Trim(s, " \t\n")
}

// Keep reports whether a normalized sentence passes the quality filters:
// no leading or trailing ellipsis, no abbreviation tail and more than
// minLength characters.
func Keep(s string, minLength int) bool {
	if strings.HasPrefix(s, ellipsis) || strings.HasSuffix(s, ellipsis) {
		return false
	}
	if abbreviationTail.MatchString(s) {
		return false
	}
	return utf8.RuneCountInString(s) > minLength
}

// HasAbbreviationTail reports whether s ends in a dotted abbreviation
func HasAbbreviationTail(s string) bool {
	return abbreviationTail.MatchString(s)
}
