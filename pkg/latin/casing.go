package latin

import "unicode"

// matchCase gives r the case of model.
func matchCase(r, model rune) rune {
	if unicode.IsUpper(model) {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}

// lowerRunes returns a rune-for-rune lowercase copy of word. Lowering per
// rune (rather than strings.ToLower) guarantees the copy has the same
// length as the original, which the case restoration step relies on.
func lowerRunes(word []rune) []rune {
	out := make([]rune, len(word))
	for i, r := range word {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// restoreCase maps the per-rune case pattern of orig onto the lowercase
// working buffer buf. Positions the passes never touched keep their exact
// original rune; rewritten positions take the case of the rune they
// replaced. Both slices must have the same length.
func restoreCase(buf, orig []rune) []rune {
	out := make([]rune, len(buf))
	for i, r := range buf {
		if unicode.ToLower(orig[i]) == r {
			out[i] = orig[i]
			continue
		}
		out[i] = matchCase(r, orig[i])
	}
	return out
}
