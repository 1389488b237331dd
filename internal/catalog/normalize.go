package catalog

import (
	"strings"
	"unicode"
)

// NormalizeName folds an instructor name into a matching form: lowercase,
// only a-z and whitespace kept, whitespace runs collapsed, trimmed.
//
//	"Dr. O'Brien-Smith" -> "dr obriensmith"
func NormalizeName(name string) string {
	kept := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return -1
	}, strings.ToLower(name))
	return strings.Join(strings.Fields(kept), " ")
}
