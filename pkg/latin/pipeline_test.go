package latin

import (
	"strings"
	"testing"
)

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestPipelineNormalizeUV(t *testing.T) {
	p := newTestPipeline(t)
	tests := []struct {
		input, want string
	}{
		{"Arma uirumque cano", "Arma virumque cano"},
		{"Veni, uidi, uici!", "Veni, vidi, vici!"},
		{"SENATVS POPVLVSQVE ROMANVS", "SENATUS POPULUSQUE ROMANUS"},
		{"qui uiuit in aeternum", "qui vivit in aeternum"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := p.NormalizeUV(tt.input); got != tt.want {
			t.Errorf("NormalizeUV(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPipelineNormalize(t *testing.T) {
	p := newTestPipeline(t)
	tests := []struct {
		input, want string
	}{
		{
			"Gallia eft omnis diuisa in partes tres",
			"Gallia est omnis divisa in partes tres",
		},
		{
			"quoufque tandem abutere, Catilina, patientia noftra?",
			"quousque tandem abutere, Catilina, patientia nostra?",
		},
		{"fenatuf.", "senatus."},
		{"arma uirumque", "arma virumque"},
	}
	for _, tt := range tests {
		if got := p.Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Long-s correction must run before the u/v classifier: for ftatua the
// statu- stem is only visible once the first letter reads s.
func TestPipelinePhaseOrder(t *testing.T) {
	p := newTestPipeline(t)
	if got := p.Normalize("ftatua"); got != "statua" {
		t.Errorf("Normalize(ftatua) = %q, want statua", got)
	}
}

func TestPipelineSeparatorsPreserved(t *testing.T) {
	p := newTestPipeline(t)
	tests := []struct {
		input, want string
	}{
		{"rex   dominus", "rex   dominus"},
		{"uia,  uita;\tueritas", "via,  vita;\tveritas"},
		{"primus\r\npoteft", "primus\r\npotest"},
		{"(eft)", "(est)"},
	}
	for _, tt := range tests {
		if got := p.Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPipelineNormalizeVU(t *testing.T) {
	p := newTestPipeline(t)
	if got := p.NormalizeVU("servus Victoria"); got != "seruus Uictoria" {
		t.Errorf("NormalizeVU = %q, want seruus Uictoria", got)
	}
	// Round trip back to scribal convention.
	if got := p.NormalizeVU(p.NormalizeUV("uita noua")); got != "uita noua" {
		t.Errorf("VU(UV(uita noua)) = %q, want uita noua", got)
	}
}

func TestPipelineCorrectLongS(t *testing.T) {
	p := newTestPipeline(t)
	// u/v stays untouched in this mode.
	got := p.CorrectLongS("Gallia eft omnis diuisa")
	if got != "Gallia est omnis diuisa" {
		t.Errorf("CorrectLongS = %q, want Gallia est omnis diuisa", got)
	}
}

func TestPipelineCorrectWord(t *testing.T) {
	p := newTestPipeline(t)
	got, changes := p.CorrectWord("poteft")
	if got != "potest" {
		t.Errorf("CorrectWord(poteft) = %q, want potest", got)
	}
	if len(changes) != 1 || changes[0].Rule != "rewrite_ft" {
		t.Errorf("changes = %+v, want one rewrite_ft", changes)
	}

	got, changes = p.CorrectWord("fuit")
	if got != "fuit" || len(changes) != 0 {
		t.Errorf("CorrectWord(fuit) = %q with %d changes, want unchanged", got, len(changes))
	}
}

func TestPipelineExplain(t *testing.T) {
	p := newTestPipeline(t)
	res := p.Explain("nāuis eft")
	if res.Original != "nāuis eft" {
		t.Errorf("Original = %q", res.Original)
	}
	if res.Normalized != "nāvis est" {
		t.Errorf("Normalized = %q, want nāvis est", res.Normalized)
	}
	if len(res.Changes) != 2 {
		t.Fatalf("changes = %+v, want 2", res.Changes)
	}
	// Positions are rune offsets into the original text.
	if res.Changes[0].Pos != 2 || res.Changes[0].Rule != "intervocalic" {
		t.Errorf("change 0 = %+v, want intervocalic at 2", res.Changes[0])
	}
	if res.Changes[1].Pos != 7 || res.Changes[1].Rule != "rewrite_ft" {
		t.Errorf("change 1 = %+v, want rewrite_ft at 7", res.Changes[1])
	}
}

func TestPipelineExplainUV(t *testing.T) {
	p := newTestPipeline(t)
	res := p.ExplainUV("arma uirumque cano")
	if res.Normalized != "arma virumque cano" {
		t.Errorf("Normalized = %q", res.Normalized)
	}
	if len(res.Changes) != 1 {
		t.Fatalf("changes = %+v, want 1", res.Changes)
	}
	c := res.Changes[0]
	if c.Pos != 5 || c.From != "u" || c.To != "v" || c.Rule != "initial_before_vowel" {
		t.Errorf("change = %+v, want u->v initial_before_vowel at 5", c)
	}
	if c.Context != "[u]iru" {
		t.Errorf("context = %q, want [u]iru", c.Context)
	}
}

func TestPipelineStats(t *testing.T) {
	p := newTestPipeline(t)
	p.Normalize("Gallia eft omnis diuisa in partes tres")

	snap := p.Stats()
	if snap.Words != 7 {
		t.Errorf("Words = %d, want 7", snap.Words)
	}
	if snap.Changed != 2 {
		t.Errorf("Changed = %d, want 2", snap.Changed)
	}
	if snap.Rules["rewrite_ft"] != 1 || snap.Rules["intervocalic"] != 1 {
		t.Errorf("Rules = %v, want rewrite_ft:1 intervocalic:1", snap.Rules)
	}
	if _, ok := snap.Rules["after_q"]; ok {
		t.Errorf("Rules includes idle after_q: %v", snap.Rules)
	}

	p.Normalize("quod")
	if snap := p.Stats(); snap.Words != 8 || snap.Changed != 2 {
		t.Errorf("after quod: Words = %d Changed = %d, want 8/2", snap.Words, snap.Changed)
	}

	p.ResetStats()
	if snap := p.Stats(); snap.Words != 0 || snap.Changed != 0 || len(snap.Rules) != 0 {
		t.Errorf("after reset: %+v, want zeroed", snap)
	}
}

func TestPipelinePass2Disabled(t *testing.T) {
	p := newTestPipeline(t, WithPass2(false))
	if got := p.Normalize("funt"); got != "funt" {
		t.Errorf("Normalize(funt) = %q, want funt with pass 2 off", got)
	}
	// Pass 1 is unconditional.
	if got := p.Normalize("eft"); got != "est" {
		t.Errorf("Normalize(eft) = %q, want est", got)
	}
}

func TestPipelinePass2Variant(t *testing.T) {
	p := newTestPipeline(t)
	if !p.Pass2() {
		t.Fatal("pass 2 should default on")
	}
	if v := p.Pass2Variant(true); v != p {
		t.Error("Pass2Variant(true) on a pass-2 pipeline should return the same pipeline")
	}

	off := p.Pass2Variant(false)
	if got := off.Normalize("funt"); got != "funt" {
		t.Errorf("variant Normalize(funt) = %q, want funt", got)
	}
	if got := p.Normalize("funt"); got != "sunt" {
		t.Errorf("original Normalize(funt) = %q, want sunt", got)
	}
	// Counters are shared between variants.
	if words := p.Stats().Words; words != 2 {
		t.Errorf("Words = %d, want 2", words)
	}
}

func TestPipelineBackendSelection(t *testing.T) {
	for _, name := range []string{"reference", "turbo"} {
		p := newTestPipeline(t, WithBackend(name))
		info := p.Backend()
		if info.Name != name {
			t.Errorf("Backend().Name = %q, want %q", info.Name, name)
		}
		if info.Reason != "configured" {
			t.Errorf("Backend().Reason = %q, want configured", info.Reason)
		}
		if got := p.Normalize("Arma uirumque cano"); got != "Arma virumque cano" {
			t.Errorf("%s: Normalize = %q", name, got)
		}
	}

	if _, err := New(WithBackend("bogus")); err == nil {
		t.Error("New(WithBackend(bogus)) succeeded, want error")
	}
}

func TestPipelineBackendEnvOverride(t *testing.T) {
	t.Setenv(BackendEnv, "reference")
	p := newTestPipeline(t)
	info := p.Backend()
	if info.Name != "reference" {
		t.Errorf("Name = %q, want reference", info.Name)
	}
	if !strings.Contains(info.Reason, BackendEnv) {
		t.Errorf("Reason = %q, want mention of %s", info.Reason, BackendEnv)
	}
}

func TestPipelineBackendEnvInvalid(t *testing.T) {
	t.Setenv(BackendEnv, "warp9")
	p := newTestPipeline(t)
	info := p.Backend()
	if info.Name != "reference" && info.Name != "turbo" {
		t.Errorf("Name = %q, want a real backend", info.Name)
	}
	if !strings.Contains(info.Reason, "warp9") {
		t.Errorf("Reason = %q, want the rejected value named", info.Reason)
	}
}

func TestDefaultPipeline(t *testing.T) {
	p1, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	p2, _ := Default()
	if p1 != p2 {
		t.Error("Default returned distinct pipelines")
	}
	if got := Normalize("Gallia eft omnis diuisa in partes tres"); got != "Gallia est omnis divisa in partes tres" {
		t.Errorf("package Normalize = %q", got)
	}
	if got := NormalizeUV("arma uirumque"); got != "arma virumque" {
		t.Errorf("package NormalizeUV = %q", got)
	}
	if got := NormalizeVU("servus"); got != "seruus" {
		t.Errorf("package NormalizeVU = %q", got)
	}
	if got := CorrectLongS("eft"); got != "est" {
		t.Errorf("package CorrectLongS = %q", got)
	}
}
