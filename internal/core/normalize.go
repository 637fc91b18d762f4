package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a category filter for matching: diacritics
// stripped, lowercased, restricted to printable ASCII. Idempotent, and
// never fails (an empty input yields an empty string).
//
// Known limitation: only the query side of a category match goes
// through Normalize. Stored categories are kept verbatim and compared
// lowercased, so a record saved as "Farmácia" will not match the
// filter "farmácia" (normalized to "farmacia"). Kept as-is pending a
// product decision on normalizing both sides.
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		}
	}
	return b.String()
}
