package ruleset

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// Word boundary markers used in every n-gram key. "<fu" is the trigram of a
// word starting "fu"; "us>" the trigram of a word ending "us".
const (
	BoundaryStart = "<"
	BoundaryEnd   = ">"
)

// NGramModel is the read-only frequency model built from a reference
// corpus. Pass 2 of the long-s corrector consults the trigram and quadgram
// tables; bigrams are kept for asset validation and ratio reporting.
type NGramModel struct {
	bigrams   map[string]uint64
	trigrams  map[string]uint64
	quadgrams map[string]uint64
}

// Bigram returns the corpus count of a 2-character key (0 when unseen).
func (m *NGramModel) Bigram(key string) uint64 { return m.bigrams[key] }

// Trigram returns the corpus count of a 3-character key (0 when unseen).
func (m *NGramModel) Trigram(key string) uint64 { return m.trigrams[key] }

// Quadgram returns the corpus count of a 4-character key (0 when unseen).
func (m *NGramModel) Quadgram(key string) uint64 { return m.quadgrams[key] }

// Sizes returns the number of distinct bigrams, trigrams and quadgrams.
func (m *NGramModel) Sizes() (int, int, int) {
	return len(m.bigrams), len(m.trigrams), len(m.quadgrams)
}

// EachTrigram calls fn for every trigram entry. Iteration order is not
// defined. Used by the accelerated backend to build its packed index.
func (m *NGramModel) EachTrigram(fn func(key string, count uint64)) {
	for k, v := range m.trigrams {
		fn(k, v)
	}
}

// EachQuadgram calls fn for every quadgram entry.
func (m *NGramModel) EachQuadgram(fn func(key string, count uint64)) {
	for k, v := range m.quadgrams {
		fn(k, v)
	}
}

// decodeTable reads one frequency table in the given format.
func decodeTable(r io.Reader, format string) (map[string]uint64, error) {
	var table map[string]uint64
	switch format {
	case "json":
		if err := json.NewDecoder(r).Decode(&table); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case "gob":
		if err := gob.NewDecoder(r).Decode(&table); err != nil {
			return nil, fmt.Errorf("decode gob: %w", err)
		}
	case "gob.xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open xz: %w", err)
		}
		if err := gob.NewDecoder(xr).Decode(&table); err != nil {
			return nil, fmt.Errorf("decode gob: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown table format %q", format)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	return table, nil
}

// SaveTable writes a frequency table to path as xz-compressed gob, the
// format the importer emits for full corpus builds.
func SaveTable(table map[string]uint64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	xw, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("open xz writer: %w", err)
	}
	if err := gob.NewEncoder(xw).Encode(table); err != nil {
		f.Close()
		return fmt.Errorf("encode gob: %w", err)
	}
	if err := xw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close xz writer: %w", err)
	}
	return f.Close()
}
