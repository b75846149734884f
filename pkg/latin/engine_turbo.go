package latin

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

// turboEngine is the accelerated engine: byte classification tables,
// byte-slice scanning and packed n-gram keys instead of per-word rune
// decoding and string map lookups. Words containing any non-ASCII byte
// are handed to the reference engine, as are all long-s calls when the
// ruleset itself carries non-ASCII rewrites. Everything the turbo path
// does answer itself must match the reference engine change for change.
type turboEngine struct {
	rs        *ruleset.Set
	ref       *referenceEngine
	threshold float64

	vowel   [128]bool
	perfect [128]bool
	onset   [128]bool // indexed by the consonant opening the cluster

	words map[string]bool
	stems [][]byte
	allow map[string]bool

	rewrites   []turboRewrite
	asciiRules bool

	tri  map[uint32]uint64
	quad map[uint32]uint64
}

type turboRewrite struct {
	from, to []byte
	rule     string
}

func newTurboEngine(rs *ruleset.Set, threshold float64) *turboEngine {
	e := &turboEngine{
		rs:         rs,
		ref:        newReferenceEngine(rs, threshold),
		threshold:  threshold,
		words:      make(map[string]bool, len(rs.UV.VocalicWords)),
		allow:      make(map[string]bool, len(rs.LongS.Allowlist)),
		asciiRules: true,
		tri:        make(map[uint32]uint64),
		quad:       make(map[uint32]uint64),
	}

	for _, r := range strings.ToLower(rs.UV.Vowels) {
		if r < 128 {
			e.vowel[r] = true
		}
	}
	for _, r := range strings.ToLower(rs.UV.PerfectConsonants) {
		if r < 128 {
			e.perfect[r] = true
		}
	}
	for _, o := range rs.UV.OnsetExceptions {
		o = strings.ToLower(o)
		if o[0] < 128 {
			e.onset[o[0]] = true
		}
	}
	for _, w := range rs.UV.VocalicWords {
		e.words[strings.ToLower(w)] = true
	}
	for _, s := range rs.UV.VocalicStems {
		e.stems = append(e.stems, []byte(strings.ToLower(s)))
	}
	for _, w := range rs.LongS.Allowlist {
		e.allow[strings.ToLower(w)] = true
	}
	for _, rw := range rs.LongS.Pass1 {
		if !isASCII(rw.From) || !isASCII(rw.To) {
			e.asciiRules = false
			break
		}
		e.rewrites = append(e.rewrites, turboRewrite{
			from: []byte(rw.From),
			to:   []byte(rw.To),
			rule: "rewrite_" + rw.From,
		})
	}
	rs.NGrams.EachTrigram(func(key string, count uint64) {
		if len(key) == 3 && isASCII(key) {
			e.tri[pack3(key[0], key[1], key[2])] = count
		}
	})
	rs.NGrams.EachQuadgram(func(key string, count uint64) {
		if len(key) == 4 && isASCII(key) {
			e.quad[pack4(key[0], key[1], key[2], key[3])] = count
		}
	})
	return e
}

func (e *turboEngine) Name() string      { return "turbo" }
func (e *turboEngine) Accelerated() bool { return true }

func (e *turboEngine) WordUV(word string) (string, []Change) {
	if !isASCII(word) {
		return e.ref.WordUV(word)
	}
	b := []byte(word)
	low := lowerASCII(b)

	var out []byte
	var changes []Change
	for i, c := range low {
		if c != 'u' && c != 'v' {
			continue
		}
		nc, rule := e.classifyUV(low, i)
		oc := b[i]
		if oc == 'U' || oc == 'V' {
			nc -= 'a' - 'A'
		}
		if nc == oc {
			continue
		}
		if out == nil {
			out = append([]byte(nil), b...)
		}
		out[i] = nc
		changes = append(changes, Change{
			Pos:     i,
			From:    string(rune(oc)),
			To:      string(rune(nc)),
			Rule:    rule,
			Context: contextBytes(b, i),
		})
	}
	if out == nil {
		return word, nil
	}
	return string(out), changes
}

// classifyUV is the byte-table mirror of the reference cascade; low is
// the lowercased word, never mutated.
func (e *turboEngine) classifyUV(low []byte, idx int) (byte, string) {
	prev := bat(low, idx-1)
	prev2 := bat(low, idx-2)
	prev3 := bat(low, idx-3)
	next1 := bat(low, idx+1)
	next2 := bat(low, idx+2)
	next3 := bat(low, idx+3)
	next4 := bat(low, idx+4)
	next5 := bat(low, idx+5)

	if prev == 'q' {
		return 'u', "after_q"
	}
	if prev == 'g' && e.vowel[next1] {
		if prev2 == 'n' {
			return 'u', "ngu_digraph"
		}
		return 'u', "gu_before_vowel"
	}
	if e.words[string(low)] {
		return 'u', "word_exception"
	}

	if next1 == 'i' && prev == 'l' && hasVoloStemBytes(low) && next2 == 't' && next3 == 0 {
		return 'u', "volo_perfect"
	}
	if next1 == 'e' && next2 == 'r' && next3 == 'e' && next4 == 0 && e.perfect[prev] {
		return 'u', "perfect_uere"
	}
	if next1 == 'i' {
		if next2 == 0 && e.perfect[prev] {
			return 'u', "perfect_ui"
		}
		if next2 == 't' && next3 == 0 && e.perfect[prev] {
			return 'u', "perfect_uit"
		}
		if next2 == 'm' && next3 == 'u' && next4 == 's' && next5 == 0 && e.perfect[prev] {
			return 'u', "perfect_uimus"
		}
		if next2 == 's' && next3 == 's' && next4 == 'e' && next5 == 0 && consByte(prev) {
			return 'u', "perfect_uisse"
		}
	}
	if next1 == 'e' && next2 == 'r' && (next3 == 'a' || next3 == 'i' || next3 == 'o') && e.perfect[prev] {
		return 'u', "perfect_uer_stem"
	}

	if next1 == 'u' || next1 == 'v' {
		if consByte(prev) {
			if e.vowel[prev2] {
				return 'v', "double_u_first_VCuu"
			}
			return 'u', "double_u_first_CCuu"
		}
		if e.vowel[prev] {
			if prev == 'i' && idx == 1 {
				return 'u', "double_u_first_initial_i"
			}
			return 'v', "double_u_first_Vuu"
		}
	}
	if prev == 'u' || prev == 'v' {
		if consByte(prev2) {
			if e.vowel[prev3] {
				return 'u', "double_u_second_VCuu"
			}
			return 'v', "double_u_second_CCuu"
		}
		if e.vowel[prev2] {
			if prev2 == 'i' && idx == 2 {
				return 'v', "double_u_second_initial_i"
			}
			return 'u', "double_u_second_Vuu"
		}
	}

	if idx == 0 {
		if e.vowel[next1] {
			return 'v', "initial_before_vowel"
		}
		return 'u', "initial_before_consonant"
	}
	if e.vowel[prev] && e.vowel[next1] {
		return 'v', "intervocalic"
	}
	if consByte(next1) {
		return 'u', "before_consonant"
	}
	if idx == len(low)-1 {
		return 'u', "word_final"
	}

	if consByte(prev) && e.vowel[next1] {
		for _, stem := range e.stems {
			if bytes.Contains(low, stem) {
				return 'u', "vocalic_u_stem"
			}
		}
		if idx == 1 && e.onset[prev] {
			return 'u', "onset_exception"
		}
		return 'v', "post_consonant_before_vowel"
	}
	if consByte(prev) && (next1 == 0 || consByte(next1)) {
		return 'u', "post_consonant_before_consonant"
	}
	return 'u', "default"
}

func (e *turboEngine) WordLongS(word string, applyPass2 bool) (string, []Change) {
	if !e.asciiRules || !isASCII(word) {
		return e.ref.WordLongS(word, applyPass2)
	}
	if word == "" {
		return word, nil
	}
	b := []byte(word)
	low := lowerASCII(b)

	var changes []Change
	for _, rw := range e.rewrites {
		for i := 0; i+len(rw.from) <= len(low); {
			if !bytes.HasPrefix(low[i:], rw.from) {
				i++
				continue
			}
			for j, c := range rw.to {
				if low[i+j] != c {
					changes = append(changes, Change{Pos: i + j, Rule: rw.rule})
					low[i+j] = c
				}
			}
			i += len(rw.from)
		}
	}
	if e.rs.LongS.FinalFS && low[len(low)-1] == 'f' {
		changes = append(changes, Change{Pos: len(low) - 1, Rule: "final_f"})
		low[len(low)-1] = 's'
	}
	if applyPass2 {
		changes = e.pass2Bytes(low, changes)
	}
	if len(changes) == 0 {
		return word, nil
	}

	out := make([]byte, len(low))
	for i, c := range low {
		ob := b[i]
		switch {
		case lowerByte(ob) == c:
			out[i] = ob
		case 'A' <= ob && ob <= 'Z':
			out[i] = upperByte(c)
		default:
			out[i] = c
		}
	}
	for i := range changes {
		pos := changes[i].Pos
		changes[i].From = string(rune(b[pos]))
		changes[i].To = string(rune(out[pos]))
		changes[i].Context = contextBytes(b, pos)
	}
	return string(out), changes
}

func (e *turboEngine) pass2Bytes(low []byte, changes []Change) []Change {
	if e.allow[string(low)] {
		return changes
	}
	if len(low) < 2 || low[0] != 'f' {
		return changes
	}

	var fFreq, sFreq uint64
	var rule string
	switch low[1] {
	case 'u':
		fFreq, sFreq = e.tri[pack3('<', 'f', 'u')], e.tri[pack3('<', 's', 'u')]
		rule = "pass2_fu"
	case 'e':
		fFreq, sFreq = e.tri[pack3('<', 'f', 'e')], e.tri[pack3('<', 's', 'e')]
		rule = "pass2_fe"
	case 'i':
		if len(low) < 3 {
			return changes
		}
		fFreq, sFreq = e.quad[pack4('<', 'f', 'i', low[2])], e.quad[pack4('<', 's', 'i', low[2])]
		rule = "pass2_fi"
	default:
		return changes
	}

	if sFreq > 0 && float64(sFreq) > float64(fFreq)*e.threshold {
		changes = append(changes, Change{Pos: 0, Rule: rule})
		low[0] = 's'
	}
	return changes
}

// Byte-level helpers for the ASCII fast path.

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func lowerASCII(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = lowerByte(c)
	}
	return out
}

func lowerByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func upperByte(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// bat returns the byte at i, or 0 when i is out of range.
func bat(w []byte, i int) byte {
	if i < 0 || i >= len(w) {
		return 0
	}
	return w[i]
}

func consByte(c byte) bool {
	return c != 0 && c < 128 && strings.IndexByte(consonants, c) >= 0
}

var voloPrefixes = [][]byte{[]byte("vol"), []byte("nol"), []byte("mal"), []byte("uol")}

func hasVoloStemBytes(low []byte) bool {
	for _, p := range voloPrefixes {
		if bytes.HasPrefix(low, p) {
			return true
		}
	}
	return false
}

func contextBytes(w []byte, idx int) string {
	start := idx - contextRunes
	if start < 0 {
		start = 0
	}
	end := idx + contextRunes + 1
	if end > len(w) {
		end = len(w)
	}
	var b strings.Builder
	b.Grow(end - start + 2)
	b.Write(w[start:idx])
	b.WriteByte('[')
	b.WriteByte(w[idx])
	b.WriteByte(']')
	b.Write(w[idx+1 : end])
	return b.String()
}

func pack3(a, b, c byte) uint32 {
	return uint32(a)<<16 | uint32(b)<<8 | uint32(c)
}

func pack4(a, b, c, d byte) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)
}
