package importer

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateCompleteBundle(t *testing.T) {
	dir := buildTestBundle(t, sampleCorpus)

	rep, err := Validate(dir)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("expected OK report, got problems: %v", rep.Problems)
	}
	if rep.BundleID != "test-bundle" {
		t.Errorf("BundleID = %q, want test-bundle", rep.BundleID)
	}
	if rep.Words == 0 {
		t.Error("Words = 0, want corpus count")
	}
	if rep.Trigrams == 0 || rep.Quadgrams == 0 {
		t.Errorf("empty tables in report: tri=%d quad=%d", rep.Trigrams, rep.Quadgrams)
	}
	if rep.Allowlist == 0 {
		t.Error("Allowlist = 0, want curated allowlist size")
	}
}

func TestValidateSparseCorpus(t *testing.T) {
	// No f- or s-initial words at all: pass 2 would be blind.
	dir := buildTestBundle(t, "arma cano magnus populus")

	rep, err := Validate(dir)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rep.OK() {
		t.Fatal("expected problems for corpus without f/s words")
	}

	var mentionsFu bool
	for _, p := range rep.Problems {
		if strings.Contains(p, `"<fu"`) {
			mentionsFu = true
		}
	}
	if !mentionsFu {
		t.Errorf("problems should name the missing trigram, got %v", rep.Problems)
	}
}

func TestValidateMissingBundle(t *testing.T) {
	if _, err := Validate(filepath.Join(t.TempDir(), "no-such-bundle")); err == nil {
		t.Fatal("expected error for missing bundle directory")
	}
}
