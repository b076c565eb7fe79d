// Package textnorm normalizes free text for keyword matching.
//
// Both the flag deriver and the language detector match vocabulary against
// the output of Normalize, so "Éxito", "EXITO" and "éxito" all compare equal.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds case, strips diacritics, replaces every rune that is not
// a letter or digit with a space and collapses whitespace. The result is
// padded with one space on each side so that a term written as " win "
// only matches the whole word.
//
// Empty or punctuation-only input yields "".
func Normalize(s string) string {
	// x/text transformers keep state between calls, so build one per call.
	t := transform.Chain(
		cases.Fold(),
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded) + 2)
	b.WriteByte(' ')
	space := true
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	out := b.String()
	if out == " " {
		return ""
	}
	if !space {
		out += " "
	}
	return out
}

// Tokens returns the words of the normalized text.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// ContainsAny reports whether the normalized text contains any of the terms.
// normalized must come from Normalize; terms are matched as plain substrings.
func ContainsAny(normalized string, terms []string) bool {
	if normalized == "" {
		return false
	}
	for _, t := range terms {
		if t != "" && strings.Contains(normalized, t) {
			return true
		}
	}
	return false
}
