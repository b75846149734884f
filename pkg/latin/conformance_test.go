package latin

import (
	"math/rand"
	"reflect"
	"testing"
	"unicode"
)

// The turbo engine must be indistinguishable from the reference engine:
// same output, same change trail, for every input.

var conformanceWords = []string{
	// u/v cascade coverage
	"quod", "aqua", "quinque", "sequitur", "lingua", "sanguis", "unguis",
	"cui", "cuius", "huic", "sua", "duo", "eius", "perpetuum", "fluunt",
	"fuit", "potuit", "soluit", "voluit", "fuimus", "fuisse", "voluisse",
	"fuerat", "fuerit", "fuero", "fuere", "potuere",
	"seruus", "paruus", "fluuius", "nouus", "iuuat", "iuuenis",
	"uia", "uir", "urbs", "usus", "breuis", "auis", "caueo", "causa",
	"silua", "cultus", "uultus", "statua", "suadeo", "persuadet",
	"puer", "pueri", "puella", "ruere", "suauis", "cuiusmodi",
	"vrbs", "avt", "tu", "cum", "u", "v",
	// long-s coverage
	"ftatua", "fpiritus", "fcilicet", "fquam", "fpecies", "fufpiciens",
	"fumma", "tranfponere", "profpera", "poteft", "ef", "fenatuf",
	"f", "ff", "fff", "funt", "fed", "ficut", "fibi", "fimulacra",
	"feipfum", "fupra", "fenfuf", "fingere", "fifco", "fi",
	"fecit", "fundamentum", "fuerunt", "filius",
	// casing
	"SENATVS", "POPVLVSQVE", "ROMANVS", "SerUus", "Uia", "UIA",
	"FTATUA", "Fpiritus", "FUIT", "Fuit", "PoteFT",
	// non-ASCII delegation
	"uīta", "seruāre", "nāuis", "sērus", "Ā", "İ",
	// junk
	"", "a", "rex", "dominus", "123", "αβγ", "x", "qqq", "uuu", "vvv",
}

var conformanceAlphabet = []rune("aaeeiioouuuuuvvvfffssbcdglmnpqrtxāū")

func randomConformanceWord(rng *rand.Rand) string {
	word := make([]rune, 1+rng.Intn(11))
	for i := range word {
		r := conformanceAlphabet[rng.Intn(len(conformanceAlphabet))]
		if rng.Intn(5) == 0 {
			r = unicode.ToUpper(r)
		}
		word[i] = r
	}
	return string(word)
}

func conformanceCorpus() []string {
	words := append([]string(nil), conformanceWords...)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 4000; i++ {
		words = append(words, randomConformanceWord(rng))
	}
	return words
}

func TestEngineConformanceUV(t *testing.T) {
	rs := testSet(t)
	ref := newReferenceEngine(rs, rs.LongS.Threshold)
	turbo := newTurboEngine(rs, rs.LongS.Threshold)

	for _, word := range conformanceCorpus() {
		wantWord, wantChanges := ref.WordUV(word)
		gotWord, gotChanges := turbo.WordUV(word)
		if gotWord != wantWord {
			t.Errorf("WordUV(%q): turbo %q, reference %q", word, gotWord, wantWord)
			continue
		}
		if !reflect.DeepEqual(gotChanges, wantChanges) {
			t.Errorf("WordUV(%q) changes: turbo %+v, reference %+v", word, gotChanges, wantChanges)
		}
	}
}

func TestEngineConformanceLongS(t *testing.T) {
	rs := testSet(t)
	ref := newReferenceEngine(rs, rs.LongS.Threshold)
	turbo := newTurboEngine(rs, rs.LongS.Threshold)

	for _, pass2 := range []bool{true, false} {
		for _, word := range conformanceCorpus() {
			wantWord, wantChanges := ref.WordLongS(word, pass2)
			gotWord, gotChanges := turbo.WordLongS(word, pass2)
			if gotWord != wantWord {
				t.Errorf("WordLongS(%q, pass2=%v): turbo %q, reference %q", word, pass2, gotWord, wantWord)
				continue
			}
			if !reflect.DeepEqual(gotChanges, wantChanges) {
				t.Errorf("WordLongS(%q, pass2=%v) changes: turbo %+v, reference %+v", word, pass2, gotChanges, wantChanges)
			}
		}
	}
}

func TestEngineConformancePipelines(t *testing.T) {
	texts := []string{
		"Gallia eft omnis diuisa in partes tres.",
		"Arma uirumque cano, Troiae qui primus ab oris.",
		"SENATVS POPVLVSQVE ROMANVS",
		"quoufque tandem abutere, Catilina, patientia noftra?",
		"sērus in caelum redeās diūque laetus interfis populō Quirīnī",
	}
	rp := newTestPipeline(t, WithBackend("reference"))
	tp := newTestPipeline(t, WithBackend("turbo"))
	for _, text := range texts {
		if got, want := tp.Normalize(text), rp.Normalize(text); got != want {
			t.Errorf("Normalize(%q): turbo %q, reference %q", text, got, want)
		}
		if !reflect.DeepEqual(tp.Explain(text).Changes, rp.Explain(text).Changes) {
			t.Errorf("Explain(%q): change trails diverge", text)
		}
	}
}
