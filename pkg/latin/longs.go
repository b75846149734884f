package latin

import "github.com/scriptorivm/orthograph/pkg/ruleset"

// longSWord runs the long-s corrector on one word: the deterministic
// pass 1 rewrites, then (optionally) the frequency-driven pass 2 on the
// word-initial letter. The change trail reports original and final runes
// with their original case.
func longSWord(rs *ruleset.Set, word string, applyPass2 bool, threshold float64) (string, []Change) {
	if word == "" {
		return word, nil
	}
	orig := []rune(word)
	buf := lowerRunes(orig)

	changes := longSPass1(rs, buf, nil)
	if applyPass2 {
		changes = longSPass2(rs, buf, threshold, changes)
	}
	if len(changes) == 0 {
		return word, nil
	}

	out := restoreCase(buf, orig)
	for i := range changes {
		pos := changes[i].Pos
		changes[i].From = string(orig[pos])
		changes[i].To = string(out[pos])
		changes[i].Context = contextWindow(orig, pos)
	}
	return string(out), changes
}

// longSPass1 applies the ordered impossible-sequence rewrites to buf in
// place, left to right, each rule over the output of the one before it,
// then the word-final f rule. Matched spans are skipped whole so a
// replacement is never rescanned by the same rule.
func longSPass1(rs *ruleset.Set, buf []rune, changes []Change) []Change {
	for _, rw := range rs.LongS.Pass1 {
		from := []rune(rw.From)
		to := []rune(rw.To)
		rule := "rewrite_" + rw.From
		for i := 0; i+len(from) <= len(buf); {
			if !runesMatch(buf[i:], from) {
				i++
				continue
			}
			for j, r := range to {
				if buf[i+j] != r {
					changes = append(changes, Change{Pos: i + j, Rule: rule})
					buf[i+j] = r
				}
			}
			i += len(from)
		}
	}
	if rs.LongS.FinalFS && buf[len(buf)-1] == 'f' {
		changes = append(changes, Change{Pos: len(buf) - 1, Rule: "final_f"})
		buf[len(buf)-1] = 's'
	}
	return changes
}

// longSPass2 disambiguates a word-initial f against its s-hypothesis by
// corpus frequency. Allowlisted words are never touched; ties and
// zero-evidence cases keep the f.
func longSPass2(rs *ruleset.Set, buf []rune, threshold float64, changes []Change) []Change {
	if rs.LongS.Allowlisted(string(buf)) {
		return changes
	}
	if len(buf) < 2 || buf[0] != 'f' {
		return changes
	}

	ng := rs.NGrams
	var fFreq, sFreq uint64
	var rule string
	switch buf[1] {
	case 'u':
		fFreq, sFreq = ng.Trigram("<fu"), ng.Trigram("<su")
		rule = "pass2_fu"
	case 'e':
		fFreq, sFreq = ng.Trigram("<fe"), ng.Trigram("<se")
		rule = "pass2_fe"
	case 'i':
		// Trigram counts barely separate fi from si; the quadgram over
		// the third letter is far more discriminating (fim 13 vs sim 2149).
		if len(buf) < 3 {
			return changes
		}
		third := string(buf[2])
		fFreq, sFreq = ng.Quadgram("<fi"+third), ng.Quadgram("<si"+third)
		rule = "pass2_fi"
	default:
		return changes
	}

	if sFreq > 0 && float64(sFreq) > float64(fFreq)*threshold {
		changes = append(changes, Change{Pos: 0, Rule: rule})
		buf[0] = 's'
	}
	return changes
}

func runesMatch(buf, pat []rune) bool {
	for i, r := range pat {
		if buf[i] != r {
			return false
		}
	}
	return true
}

// longSRuleNames returns every rule name the corrector can report for
// this ruleset, for stats counter pre-registration.
func longSRuleNames(rs *ruleset.Set) []string {
	names := make([]string, 0, len(rs.LongS.Pass1)+4)
	for _, rw := range rs.LongS.Pass1 {
		names = append(names, "rewrite_"+rw.From)
	}
	return append(names, "final_f", "pass2_fu", "pass2_fe", "pass2_fi")
}
