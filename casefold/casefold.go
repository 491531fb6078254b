// Package casefold implements simple Unicode case folding for
// case-insensitive matching.
//
// Simple folding (status C + S mappings) is a per-codepoint relation: it
// never changes the number of codepoints, unlike full folding. Codepoints
// that compare equal under simple folding form a small cycle (an "orbit"),
// e.g. {'K', 'k', 'K' (U+212A KELVIN SIGN)}. Two codepoints are
// case-fold-equivalent exactly when they share an orbit.
//
// The mapping is deterministic and total: every codepoint folds at least to
// itself. ASCII is served by a generated table (see cmd/genfold); the rest
// of the plane walks the Unicode fold orbit.
package casefold

import "unicode"

const asciiMax = 0x80

// Fold returns the canonical representative of r's simple case-folding
// orbit: the smallest codepoint that folds together with r. Two codepoints
// a and b are case-fold-equivalent iff Fold(a) == Fold(b).
func Fold(r rune) rune {
	if r >= 0 && r < asciiMax {
		if f := asciiFold[r]; f != 0 {
			return f
		}
		return r
	}
	min := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < min {
			min = f
		}
	}
	return min
}

// Equivalents returns r's full fold orbit, always including r itself.
// The orbit is returned in cycle order starting at r, so the result is
// deterministic for a given input.
func Equivalents(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	return orbit
}
