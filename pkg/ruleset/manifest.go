package ruleset

import (
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// Manifest describes one versioned rule/frequency bundle: where each asset
// lives, how it is encoded, and an optional integrity checksum per file.
type Manifest struct {
	ID        string   `yaml:"id" json:"id"`
	Version   string   `yaml:"version" json:"version"`
	Source    string   `yaml:"source" json:"source"`
	SourceURL string   `yaml:"source_url" json:"source_url,omitempty"`
	License   string   `yaml:"license" json:"license"`
	Words     uint64   `yaml:"corpus_words" json:"corpus_words,omitempty"`
	UVRules   AssetRef `yaml:"uv_rules" json:"uv_rules"`
	LongS     AssetRef `yaml:"longs_rules" json:"longs_rules"`
	Bigrams   AssetRef `yaml:"bigrams" json:"bigrams"`
	Trigrams  AssetRef `yaml:"trigrams" json:"trigrams"`
	Quadgrams AssetRef `yaml:"quadgrams" json:"quadgrams"`
}

// AssetRef points at a single data file inside the bundle. Format is derived
// from the file extension when empty ("yaml", "json", "gob", "gob.xz").
// Checksum, when set, is "blake3:<hex>" and is verified on load.
type AssetRef struct {
	Path     string `yaml:"path" json:"path"`
	Format   string `yaml:"format,omitempty" json:"format,omitempty"`
	Checksum string `yaml:"checksum,omitempty" json:"checksum,omitempty"`
}

// format resolves the effective encoding of the asset.
func (a AssetRef) format() string {
	if a.Format != "" {
		return a.Format
	}
	switch {
	case path.Ext(a.Path) == ".yaml" || path.Ext(a.Path) == ".yml":
		return "yaml"
	case path.Ext(a.Path) == ".json":
		return "json"
	case path.Ext(a.Path) == ".xz":
		return "gob.xz"
	case path.Ext(a.Path) == ".gob":
		return "gob"
	default:
		return "json"
	}
}

// loadManifest reads and parses manifest.yaml from the bundle root.
func loadManifest(fsys fs.FS) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, "manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest: missing id")
	}
	for name, ref := range map[string]AssetRef{
		"uv_rules":    m.UVRules,
		"longs_rules": m.LongS,
		"bigrams":     m.Bigrams,
		"trigrams":    m.Trigrams,
		"quadgrams":   m.Quadgrams,
	} {
		if ref.Path == "" {
			return nil, fmt.Errorf("manifest %s: missing %s path", m.ID, name)
		}
	}
	return &m, nil
}
