// Package answer compares typed flashcard answers against the expected text
// while ignoring case, accents and punctuation.
package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the Combining Diacritical Marks block, U+0300..U+036F.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

func isWordOrSpace(r rune) bool {
	return r == '_' ||
		unicode.IsLetter(r) ||
		unicode.IsDigit(r) ||
		unicode.IsMark(r) ||
		unicode.IsSpace(r)
}

func newFolder() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(combiningDiacritics)),
		runes.Remove(runes.Predicate(func(r rune) bool { return !isWordOrSpace(r) })),
		norm.NFC,
	)
}

// Normalize canonicalises text for comparison: accents from the combining
// diacritics block are stripped after NFD decomposition, anything that is
// not a letter, digit, mark, underscore or whitespace is dropped, and the
// result is lower-cased and trimmed. Remaining marks (kana voicing, for
// example) are recomposed so "が" stays distinct from "か".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(newFolder(), text)
	if err != nil {
		folded = text
	}
	return strings.TrimSpace(cases.Lower(language.Und).String(folded))
}

// Matches reports whether a and b normalise to the same string.
func Matches(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Validate reports whether input is an acceptable answer for expected.
// Blank input is always wrong, even when expected is blank too.
func Validate(input, expected string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	return Matches(input, expected)
}
