package mark

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeIdentifier normalizes a label for matching definitions against
// references: internal whitespace collapses to one space, the edges are
// trimmed, and casing is case folded before uppercasing so that characters
// with expanding mappings (such as ß and ẞ, both SS) still match.
func NormalizeIdentifier(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	inWhitespace := false

	for _, r := range value {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWhitespace = true
		default:
			if inWhitespace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			inWhitespace = false
			b.WriteRune(r)
		}
	}

	// A Caser is not safe for concurrent use, so fold with a fresh one.
	return strings.ToUpper(cases.Fold().String(b.String()))
}
