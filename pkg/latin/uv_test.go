package latin

import (
	"testing"

	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

func testSet(t *testing.T) *ruleset.Set {
	t.Helper()
	rs, err := ruleset.Default()
	if err != nil {
		t.Fatalf("load embedded ruleset: %v", err)
	}
	return rs
}

func TestUVDigraphs(t *testing.T) {
	rs := testSet(t)
	tests := []struct {
		input, want string
	}{
		{"quod", "quod"},
		{"aqua", "aqua"},
		{"quinque", "quinque"},
		{"sequitur", "sequitur"},
		{"lingua", "lingua"},
		{"sanguis", "sanguis"},
		{"pinguis", "pinguis"},
		{"unguis", "unguis"},
	}
	for _, tt := range tests {
		got, _ := uvWord(rs, tt.input)
		if got != tt.want {
			t.Errorf("uvWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUVWordExceptions(t *testing.T) {
	rs := testSet(t)
	for _, word := range []string{
		"cui", "cuius", "huic", "sua", "tua", "duo", "eius", "perpetuum",
		"suus", "tuus", "vacuum", "fluunt", "fruitur", "tenuis",
	} {
		got, _ := uvWord(rs, word)
		if got != word {
			t.Errorf("uvWord(%q) = %q, want unchanged", word, got)
		}
	}
}

func TestUVPerfectTense(t *testing.T) {
	rs := testSet(t)
	tests := []struct {
		input, want string
	}{
		{"fuit", "fuit"},
		{"fui", "fui"},
		{"potuit", "potuit"},
		{"tenuit", "tenuit"},
		{"habuit", "habuit"},
		{"fuimus", "fuimus"},
		{"fuisse", "fuisse"},
		{"voluisse", "voluisse"},
		{"fuerat", "fuerat"},
		{"fuerit", "fuerit"},
		{"fuero", "fuero"},
		{"fuere", "fuere"},
		{"potuere", "potuere"},
		{"voluit", "voluit"}, // volo keeps vocalic u even after l
		{"noluit", "noluit"},
		{"maluit", "maluit"},
		{"soluit", "solvit"}, // solvo is a v-stem, not a u-perfect
	}
	for _, tt := range tests {
		got, _ := uvWord(rs, tt.input)
		if got != tt.want {
			t.Errorf("uvWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUVDoubleU(t *testing.T) {
	rs := testSet(t)
	tests := []struct {
		input, want string
	}{
		{"seruus", "servus"},   // V-C-uu: first consonantal, second vocalic
		{"paruus", "parvus"},
		{"fluuius", "fluvius"}, // C-C-uu: first vocalic, second consonantal
		{"nouus", "novus"},     // V-uu: first consonantal
		{"iuuat", "iuvat"},     // word-initial i-uu: second consonantal
		{"iuuenis", "iuvenis"},
	}
	for _, tt := range tests {
		got, _ := uvWord(rs, tt.input)
		if got != tt.want {
			t.Errorf("uvWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUVPositional(t *testing.T) {
	rs := testSet(t)
	tests := []struct {
		input, want string
	}{
		// word-initial
		{"uia", "via"},
		{"uir", "vir"},
		{"uox", "vox"},
		{"uinum", "vinum"},
		{"urbs", "urbs"},
		{"usus", "usus"},
		{"unda", "unda"},
		// intervocalic
		{"nouo", "novo"},
		{"breuis", "brevis"},
		{"auis", "avis"},
		{"caueo", "caveo"},
		// before consonant
		{"scriptum", "scriptum"},
		{"causa", "causa"},
		{"aurum", "aurum"},
		{"laudat", "laudat"},
		// word-final
		{"tu", "tu"},
		{"cum", "cum"},
		{"sum", "sum"},
		// consonant-u-vowel
		{"silua", "silva"},
		{"seruo", "servo"},
		{"soluo", "solvo"},
		{"cultus", "cultus"},
		{"uultus", "vultus"},
	}
	for _, tt := range tests {
		got, _ := uvWord(rs, tt.input)
		if got != tt.want {
			t.Errorf("uvWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUVVocalicStems(t *testing.T) {
	rs := testSet(t)
	for _, word := range []string{
		"statua", "statuae", "statuam", "ardua", "arduo", "fatua",
		"residua", "strenua", "conspicua", "individua", "suadeo", "persuadet",
	} {
		got, _ := uvWord(rs, word)
		if got != word {
			t.Errorf("uvWord(%q) = %q, want unchanged", word, got)
		}
	}
}

// Word-initial consonant+u onsets must never be reclassified to v, even
// when the u sits before a vowel.
func TestUVOnsetExceptions(t *testing.T) {
	rs := testSet(t)
	tests := []struct {
		input, want string
	}{
		{"puer", "puer"},
		{"pueri", "pueri"},
		{"puella", "puella"},
		{"duellum", "duellum"},
		{"ruere", "ruere"},
		{"suauis", "suavis"}, // onset su- keeps the first u, second goes v
		{"cuiusmodi", "cuiusmodi"},
	}
	for _, tt := range tests {
		got, changes := uvWord(rs, tt.input)
		if got != tt.want {
			t.Errorf("uvWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
		for _, c := range changes {
			if c.Pos == 1 && c.To == "v" {
				t.Errorf("uvWord(%q): onset u at pos 1 reclassified to v (rule %s)", tt.input, c.Rule)
			}
		}
	}
}

func TestUVCasePreservation(t *testing.T) {
	rs := testSet(t)
	tests := []struct {
		input, want string
	}{
		{"Uia", "Via"},
		{"UIA", "VIA"},
		{"SENATVS", "SENATUS"},
		{"POPVLVSQVE", "POPULUSQUE"},
		{"ROMANVS", "ROMANUS"},
		{"SerUus", "SerVus"},
	}
	for _, tt := range tests {
		got, _ := uvWord(rs, tt.input)
		if got != tt.want {
			t.Errorf("uvWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUVMacrons(t *testing.T) {
	rs := testSet(t)
	tests := []struct {
		input, want string
	}{
		{"uīta", "vīta"}, // macron vowel counts as vowel
		{"vīta", "vīta"},
		{"seruāre", "servāre"},
		{"nāuis", "nāvis"},
	}
	for _, tt := range tests {
		got, _ := uvWord(rs, tt.input)
		if got != tt.want {
			t.Errorf("uvWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUVBothLettersClassified(t *testing.T) {
	rs := testSet(t)
	// v in the input is re-judged the same way as u.
	tests := []struct {
		input, want string
	}{
		{"vrbs", "urbs"},
		{"SENATVS", "SENATUS"},
		{"avt", "aut"},
	}
	for _, tt := range tests {
		got, _ := uvWord(rs, tt.input)
		if got != tt.want {
			t.Errorf("uvWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUVChangeTrail(t *testing.T) {
	rs := testSet(t)

	got, changes := uvWord(rs, "uia")
	if got != "via" {
		t.Fatalf("uvWord(uia) = %q, want via", got)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	c := changes[0]
	if c.Pos != 0 || c.From != "u" || c.To != "v" {
		t.Errorf("change = %+v, want pos 0 u->v", c)
	}
	if c.Rule != "initial_before_vowel" {
		t.Errorf("rule = %q, want initial_before_vowel", c.Rule)
	}
	if c.Context != "[u]ia" {
		t.Errorf("context = %q, want [u]ia", c.Context)
	}

	// Unchanged letters leave no trail.
	if _, changes := uvWord(rs, "quod"); len(changes) != 0 {
		t.Errorf("uvWord(quod) produced %d changes, want 0", len(changes))
	}
}

func TestUVEmptyAndNoUV(t *testing.T) {
	rs := testSet(t)
	for _, word := range []string{"", "rex", "dominus", "xyz"} {
		got, changes := uvWord(rs, word)
		if got != word || len(changes) != 0 {
			t.Errorf("uvWord(%q) = %q with %d changes, want identity", word, got, len(changes))
		}
	}
}
