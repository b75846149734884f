package latin

import (
	"strings"
	"unicode"
)

// Latin consonants. u and v are deliberately absent: they are what the
// classifier decides, and a neighboring u/v counts as neither vowel nor
// consonant during classification.
const consonants = "bcdfghjklmnpqrstwxyz"

func isConsonant(r rune) bool {
	return strings.ContainsRune(consonants, unicode.ToLower(r))
}

func isUV(r rune) bool {
	l := unicode.ToLower(r)
	return l == 'u' || l == 'v'
}

// at returns the rune at i, or 0 when i is out of range. Cascade rules
// treat 0 as "outside the word", which inside a single alphabetic run is
// the same as the original text having a non-letter or nothing there.
func at(word []rune, i int) rune {
	if i < 0 || i >= len(word) {
		return 0
	}
	return word[i]
}
