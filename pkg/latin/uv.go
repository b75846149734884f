package latin

import (
	"strings"

	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

// uvRuleNames lists every rule the u/v classifier can report, in cascade
// order. Stats counters are pre-registered from this list.
var uvRuleNames = []string{
	"after_q",
	"ngu_digraph",
	"gu_before_vowel",
	"word_exception",
	"volo_perfect",
	"perfect_uere",
	"perfect_ui",
	"perfect_uit",
	"perfect_uimus",
	"perfect_uisse",
	"perfect_uer_stem",
	"double_u_first_VCuu",
	"double_u_first_CCuu",
	"double_u_first_initial_i",
	"double_u_first_Vuu",
	"double_u_second_VCuu",
	"double_u_second_CCuu",
	"double_u_second_initial_i",
	"double_u_second_Vuu",
	"initial_before_vowel",
	"initial_before_consonant",
	"intervocalic",
	"before_consonant",
	"word_final",
	"vocalic_u_stem",
	"onset_exception",
	"post_consonant_before_vowel",
	"post_consonant_before_consonant",
	"default",
}

// uvWord classifies every u and v in one word and returns the rewritten
// word with the change trail. Classification always reads the original
// letters, so a decision at one position never feeds a later one.
func uvWord(rs *ruleset.Set, word string) (string, []Change) {
	orig := []rune(word)
	lr := lowerRunes(orig)
	lowered := string(lr)

	var out []rune
	var changes []Change
	for i, r := range orig {
		if !isUV(r) {
			continue
		}
		c, rule := classifyUV(rs, lr, lowered, i)
		nr := matchCase(c, r)
		if nr == r {
			continue
		}
		if out == nil {
			out = append([]rune(nil), orig...)
		}
		out[i] = nr
		changes = append(changes, Change{
			Pos:     i,
			From:    string(r),
			To:      string(nr),
			Rule:    rule,
			Context: contextWindow(orig, i),
		})
	}
	if out == nil {
		return word, nil
	}
	return string(out), changes
}

// classifyUV decides vowel u or consonant v for the letter at idx. lr is
// the lowercased word as runes, word the same as a string for table
// lookups. First matching rule wins; the order below is load-bearing.
func classifyUV(rs *ruleset.Set, lr []rune, word string, idx int) (rune, string) {
	uv := rs.UV
	prev := at(lr, idx-1)
	prev2 := at(lr, idx-2)
	prev3 := at(lr, idx-3)
	next1 := at(lr, idx+1)
	next2 := at(lr, idx+2)
	next3 := at(lr, idx+3)
	next4 := at(lr, idx+4)
	next5 := at(lr, idx+5)

	// 1. qu digraph: the u is always vocalic.
	if prev == 'q' {
		return 'u', "after_q"
	}

	// 2. gu before a vowel reads as a digraph: lingua, sanguis, unguis.
	if prev == 'g' && uv.IsVowel(next1) {
		if prev2 == 'n' {
			return 'u', "ngu_digraph"
		}
		return 'u', "gu_before_vowel"
	}

	// 3. Morphological exceptions pinned to vocalic u (cui, suus, duo...).
	if uv.IsVocalicWord(word) {
		return 'u', "word_exception"
	}

	// 4. Perfect tense patterns. volo/nolo/malo keep vocalic u before
	// -it even after l (voluit); otherwise perfect endings need one of
	// the u-perfect consonants in front of the u.
	if next1 == 'i' && prev == 'l' && hasVoloStem(word) && next2 == 't' && next3 == 0 {
		return 'u', "volo_perfect"
	}
	// Syncopated third plural -uere (potuere, fuere).
	if next1 == 'e' && next2 == 'r' && next3 == 'e' && next4 == 0 && uv.IsPerfectConsonant(prev) {
		return 'u', "perfect_uere"
	}
	if next1 == 'i' {
		// -ui at word end (fui, potui).
		if next2 == 0 && uv.IsPerfectConsonant(prev) {
			return 'u', "perfect_ui"
		}
		// -uit at word end (fuit, potuit).
		if next2 == 't' && next3 == 0 && uv.IsPerfectConsonant(prev) {
			return 'u', "perfect_uit"
		}
		// -uimus (fuimus, potuimus).
		if next2 == 'm' && next3 == 'u' && next4 == 's' && next5 == 0 && uv.IsPerfectConsonant(prev) {
			return 'u', "perfect_uimus"
		}
		// -uisse after any consonant (fuisse, voluisse).
		if next2 == 's' && next3 == 's' && next4 == 'e' && next5 == 0 && isConsonant(prev) {
			return 'u', "perfect_uisse"
		}
	}
	// Pluperfect and future perfect stems -uera-/-ueri-/-uero-.
	if next1 == 'e' && next2 == 'r' && (next3 == 'a' || next3 == 'i' || next3 == 'o') && uv.IsPerfectConsonant(prev) {
		return 'u', "perfect_uer_stem"
	}

	// 5. Double-u pairs, decided by the letters around the pair:
	// servus V-C-uu, fluvius C-C-uu, novus V-uu, iuvat word-initial i-uu.
	if next1 == 'u' || next1 == 'v' {
		if isConsonant(prev) {
			if uv.IsVowel(prev2) {
				return 'v', "double_u_first_VCuu"
			}
			return 'u', "double_u_first_CCuu"
		}
		if uv.IsVowel(prev) {
			if prev == 'i' && idx == 1 {
				return 'u', "double_u_first_initial_i"
			}
			return 'v', "double_u_first_Vuu"
		}
	}
	if prev == 'u' || prev == 'v' {
		if isConsonant(prev2) {
			if uv.IsVowel(prev3) {
				return 'u', "double_u_second_VCuu"
			}
			return 'v', "double_u_second_CCuu"
		}
		if uv.IsVowel(prev2) {
			if prev2 == 'i' && idx == 2 {
				return 'v', "double_u_second_initial_i"
			}
			return 'u', "double_u_second_Vuu"
		}
	}

	// 6. Word-initial: consonantal before a vowel (via, virtus), vocalic
	// before a consonant (urbs, usus).
	if idx == 0 {
		if uv.IsVowel(next1) {
			return 'v', "initial_before_vowel"
		}
		return 'u', "initial_before_consonant"
	}

	// 7. Intervocalic is consonantal: novus, brevis, caveo.
	if uv.IsVowel(prev) && uv.IsVowel(next1) {
		return 'v', "intervocalic"
	}

	// 8. Before a consonant: scriptum, Augustus, causa.
	if isConsonant(next1) {
		return 'u', "before_consonant"
	}

	// 9. Word-final: tu, cum, dum.
	if idx == len(lr)-1 {
		return 'u', "word_final"
	}

	// 10. Consonant-u-vowel: consonantal (silva, servo, solvit) unless
	// the word carries a vocalic-u stem (statua, suavis) or opens with an
	// onset cluster that never yields v (puer, cuiusmodi).
	if isConsonant(prev) && uv.IsVowel(next1) {
		if uv.HasVocalicStem(word) {
			return 'u', "vocalic_u_stem"
		}
		if idx == 1 && uv.IsOnsetException(string(prev)+"u") {
			return 'u', "onset_exception"
		}
		return 'v', "post_consonant_before_vowel"
	}

	// 11. Consonant-u-consonant and consonant-u-end: vultus, cultus.
	if isConsonant(prev) && (next1 == 0 || isConsonant(next1)) {
		return 'u', "post_consonant_before_consonant"
	}

	return 'u', "default"
}

func hasVoloStem(word string) bool {
	return strings.HasPrefix(word, "vol") || strings.HasPrefix(word, "nol") ||
		strings.HasPrefix(word, "mal") || strings.HasPrefix(word, "uol")
}
