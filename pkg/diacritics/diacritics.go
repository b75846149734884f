// Package diacritics removes diacritical marks from Latin and Greek text.
//
// Strip removes every combining mark while preserving letter case, which is
// what search indexing and n-gram counting want. StripMacrons is narrower:
// it drops only vowel-length marks (macron, breve) and leaves every other
// diacritic alone, so pedagogical texts keep their accents.
package diacritics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Precomposed macron/breve vowels map to bare vowels without a Unicode
// round-trip; combining marks are handled by the NFD pass below.
var macronVowels = strings.NewReplacer(
	"ā", "a", "ē", "e", "ī", "i", "ō", "o", "ū", "u", "ȳ", "y",
	"Ā", "A", "Ē", "E", "Ī", "I", "Ō", "O", "Ū", "U", "Ȳ", "Y",
	"ă", "a", "ĕ", "e", "ĭ", "i", "ŏ", "o", "ŭ", "u",
	"Ă", "A", "Ĕ", "E", "Ĭ", "I", "Ŏ", "O", "Ŭ", "U",
)

var stripLength = transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isLengthMark)), norm.NFC)

func isLengthMark(r rune) bool {
	return r == '̄' || r == '̆' // combining macron, combining breve
}

// Strip removes all combining marks, preserving case: Strip("ÁBC") == "ABC".
// Characters without a decomposition (including final sigma) pass through.
func Strip(s string) string {
	result, _, _ := transform.String(stripMarks, s)
	return result
}

// StripMacrons removes macrons and breves only, preserving case and any
// other diacritics: StripMacrons("laudāre") == "laudare" but
// StripMacrons("café") == "café".
func StripMacrons(s string) string {
	s = macronVowels.Replace(s)
	result, _, _ := transform.String(stripLength, s)
	return result
}

// Fold lowercases and strips all marks; the importer uses it to key corpus
// words before n-gram counting.
func Fold(s string) string {
	return strings.ToLower(Strip(s))
}
