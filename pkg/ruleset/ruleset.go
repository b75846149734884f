// Package ruleset loads the versioned rule and frequency assets the
// normalization engines run on: u/v exception tables, long-s rewrite rules,
// the pass 2 allowlist, and n-gram frequency tables. A Set is built once at
// startup and is read-only afterwards; a missing or corrupt asset is a load
// error, never a per-call one.
//
// Assets live in a bundle directory described by manifest.yaml. The package
// also embeds a compact starter bundle so the library works with no external
// files; full-corpus bundles are produced by the importer.
package ruleset

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"
)

// Set is one loaded bundle. All fields are immutable after Load returns;
// it is shared read-only across every normalization call.
type Set struct {
	Manifest *Manifest
	UV       *UVRules
	LongS    *LongSRules
	NGrams   *NGramModel
}

// Load reads a bundle from a directory on disk.
func Load(dir string) (*Set, error) {
	return loadFS(dirFS(dir))
}

// LoadFS reads a bundle from any fs.FS rooted at the bundle directory.
func LoadFS(fsys fs.FS) (*Set, error) {
	return loadFS(fsys)
}

func loadFS(fsys fs.FS) (*Set, error) {
	m, err := loadManifest(fsys)
	if err != nil {
		return nil, fmt.Errorf("ruleset: %w", err)
	}

	uv := &UVRules{}
	if err := loadYAML(fsys, m.UVRules, uv); err != nil {
		return nil, fmt.Errorf("ruleset %s: uv_rules: %w", m.ID, err)
	}
	if err := uv.compile(); err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", m.ID, err)
	}

	ls := &LongSRules{}
	if err := loadYAML(fsys, m.LongS, ls); err != nil {
		return nil, fmt.Errorf("ruleset %s: longs_rules: %w", m.ID, err)
	}
	if err := ls.compile(); err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", m.ID, err)
	}

	model := &NGramModel{}
	for _, t := range []struct {
		name string
		ref  AssetRef
		dst  *map[string]uint64
	}{
		{"bigrams", m.Bigrams, &model.bigrams},
		{"trigrams", m.Trigrams, &model.trigrams},
		{"quadgrams", m.Quadgrams, &model.quadgrams},
	} {
		table, err := loadTable(fsys, t.ref)
		if err != nil {
			return nil, fmt.Errorf("ruleset %s: %s: %w", m.ID, t.name, err)
		}
		*t.dst = table
	}

	return &Set{Manifest: m, UV: uv, LongS: ls, NGrams: model}, nil
}

// loadYAML reads, verifies and unmarshals one YAML asset.
func loadYAML(fsys fs.FS, ref AssetRef, dst any) error {
	data, err := fs.ReadFile(fsys, ref.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", ref.Path, err)
	}
	if err := verifyChecksum(data, ref.Checksum); err != nil {
		return fmt.Errorf("%s: %w", ref.Path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s: %w", ref.Path, err)
	}
	return nil
}

// loadTable reads, verifies and decodes one frequency table asset.
func loadTable(fsys fs.FS, ref AssetRef) (map[string]uint64, error) {
	data, err := fs.ReadFile(fsys, ref.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref.Path, err)
	}
	if err := verifyChecksum(data, ref.Checksum); err != nil {
		return nil, fmt.Errorf("%s: %w", ref.Path, err)
	}
	table, err := decodeTable(bytes.NewReader(data), ref.format())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref.Path, err)
	}
	return table, nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
	defaultErr  error
)

// Default returns the embedded starter bundle, loaded once per process.
func Default() (*Set, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embeddedAssets, "assets")
		if err != nil {
			defaultErr = fmt.Errorf("ruleset: embedded assets: %w", err)
			return
		}
		defaultSet, defaultErr = LoadFS(sub)
	})
	return defaultSet, defaultErr
}
