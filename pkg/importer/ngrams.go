package importer

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scriptorivm/orthograph/pkg/diacritics"
	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

// NGramCounter accumulates character n-gram counts over corpus text.
// Words are keyed with diacritics.Fold, so "nāvis" and "navis" count the
// same grams, and every key carries the ruleset boundary markers:
// "<fu" is a word starting "fu", "us>" a word ending "us".
type NGramCounter struct {
	bigrams   map[string]uint64
	trigrams  map[string]uint64
	quadgrams map[string]uint64
	words     uint64
}

func NewNGramCounter() *NGramCounter {
	return &NGramCounter{
		bigrams:   make(map[string]uint64),
		trigrams:  make(map[string]uint64),
		quadgrams: make(map[string]uint64),
	}
}

// AddText counts every letter run in text as one corpus word. Digits,
// punctuation and non-Latin letters act as word boundaries.
func (c *NGramCounter) AddText(text string) {
	// A literal long s in a transcription is an s.
	text = strings.ReplaceAll(text, "ſ", "s")
	folded := diacritics.Fold(text)

	start := -1
	for i, r := range folded {
		if r >= 'a' && r <= 'z' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			c.addWord(folded[start:i])
			start = -1
		}
	}
	if start >= 0 {
		c.addWord(folded[start:])
	}
}

// AddReader counts text from r line by line, bounding memory on large files.
func (c *NGramCounter) AddReader(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		c.AddText(sc.Text())
	}
	return sc.Err()
}

// addWord records word's grams. The word is lowercase ASCII by the time it
// gets here, so byte slicing is rune-exact.
func (c *NGramCounter) addWord(word string) {
	c.words++
	marked := ruleset.BoundaryStart + word + ruleset.BoundaryEnd
	for i := 0; i+2 <= len(marked); i++ {
		c.bigrams[marked[i:i+2]]++
	}
	for i := 0; i+3 <= len(marked); i++ {
		c.trigrams[marked[i:i+3]]++
	}
	for i := 0; i+4 <= len(marked); i++ {
		c.quadgrams[marked[i:i+4]]++
	}
}

// Words returns the number of corpus words counted so far.
func (c *NGramCounter) Words() uint64 { return c.words }

// Sizes returns the number of distinct bigrams, trigrams and quadgrams.
func (c *NGramCounter) Sizes() (int, int, int) {
	return len(c.bigrams), len(c.trigrams), len(c.quadgrams)
}

// BundleMeta identifies the bundle a counter writes.
type BundleMeta struct {
	ID        string
	Version   string
	Source    string
	SourceURL string
	License   string
}

// WriteBundle writes a complete loadable bundle to dir: the curated rule
// tables copied from the starter assets, the counted frequency tables as
// xz-compressed gob, and a manifest carrying a blake3 checksum per asset.
func (c *NGramCounter) WriteBundle(dir string, meta BundleMeta) error {
	if c.words == 0 {
		return fmt.Errorf("write bundle %s: empty corpus", meta.ID)
	}
	if err := ensureDir(dir); err != nil {
		return err
	}

	starter, err := ruleset.StarterAssets()
	if err != nil {
		return err
	}

	m := &ruleset.Manifest{
		ID:        meta.ID,
		Version:   meta.Version,
		Source:    meta.Source,
		SourceURL: meta.SourceURL,
		License:   meta.License,
		Words:     c.words,
	}

	rules := []struct {
		name string
		ref  *ruleset.AssetRef
	}{
		{"uv_rules.yaml", &m.UVRules},
		{"longs_rules.yaml", &m.LongS},
	}
	for _, ra := range rules {
		data, err := fs.ReadFile(starter, ra.name)
		if err != nil {
			return fmt.Errorf("read starter asset %s: %w", ra.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, ra.name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", ra.name, err)
		}
		*ra.ref = ruleset.AssetRef{Path: ra.name, Checksum: ruleset.Checksum(data)}
	}

	tables := []struct {
		name  string
		table map[string]uint64
		ref   *ruleset.AssetRef
	}{
		{"bigrams.gob.xz", c.bigrams, &m.Bigrams},
		{"trigrams.gob.xz", c.trigrams, &m.Trigrams},
		{"quadgrams.gob.xz", c.quadgrams, &m.Quadgrams},
	}
	for _, ta := range tables {
		path := filepath.Join(dir, ta.name)
		if err := ruleset.SaveTable(ta.table, path); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read back %s: %w", ta.name, err)
		}
		*ta.ref = ruleset.AssetRef{Path: ta.name, Checksum: ruleset.Checksum(data)}
	}

	return writeManifest(dir, m)
}
