package diacritics

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"ÁBC", "ABC"},
		{"ábc", "abc"},
		{"café", "cafe"},
		{"Ērigō", "Erigo"},
		{"μῆνιν ἄειδε θεά", "μηνιν αειδε θεα"},
		{"ὁδός", "οδος"},
		{"λόγος", "λογος"},
		{"ā", "a"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Strip(tt.input); got != tt.want {
			t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripPreservesFinalSigma(t *testing.T) {
	if got := Strip("λόγος"); got != "λογος" {
		t.Errorf("final sigma mangled: %q", got)
	}
}

func TestStripMacrons(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"laudāre", "laudare"},
		{"RŌMA", "ROMA"},
		{"Rōma", "Roma"},
		{"āēīōūȳ", "aeiouy"},
		{"ĀĒĪŌŪȲ", "AEIOUY"},
		{"ā", "a"},
		{"ă", "a"},
		{"fēmina", "femina"},
		{"cōnsul", "consul"},
		{"consul", "consul"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripMacrons(tt.input); got != tt.want {
			t.Errorf("StripMacrons(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripMacronsKeepsOtherDiacritics(t *testing.T) {
	if got := StripMacrons("café"); got != "café" {
		t.Errorf("StripMacrons(%q) = %q, want acute preserved", "café", got)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Rōma", "roma"},
		{"SENATVS", "senatvs"},
		{"Gallia", "gallia"},
	}
	for _, tt := range tests {
		if got := Fold(tt.input); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
