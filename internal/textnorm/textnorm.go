// Package textnorm reduces scraped and spreadsheet text to plain ASCII.
package textnorm

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonASCII = runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })

// StripNonASCII drops every rune outside the ASCII range. Invalid UTF-8 is
// dropped as well.
func StripNonASCII(s string) string {
	out, _, err := transform.String(runes.Remove(nonASCII), s)
	if err != nil {
		return s
	}
	return out
}

// Fold decomposes s (NFKD) and then drops non-ASCII runes, so accented
// letters keep their base character: "Montréal" becomes "Montreal".
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(nonASCII))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
