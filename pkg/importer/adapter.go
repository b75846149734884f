// Package importer builds full-corpus rule bundles from public Latin text
// collections. Each adapter downloads one corpus, counts character n-grams
// across it, and writes a bundle directory (manifest, curated rule tables,
// compressed frequency tables) that pkg/ruleset can load in place of the
// embedded starter bundle.
package importer

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Adapter defines one corpus source: where to fetch it, how to extract its
// text, and the identity of the bundle it produces.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "latinlibrary").
	ID() string
	// BundleID returns the ID of the bundle this adapter builds
	// (e.g. "latin-ll"). The bundle is written to a subdirectory of the
	// output directory named after it.
	BundleID() string
	// Description returns a human-readable description of the corpus.
	Description() string
	// DefaultURL returns the default source URL used for seeding the database.
	DefaultURL() string
	// License returns the license identifier of the corpus (e.g. "CC BY-SA 4.0").
	License() string
	// Import downloads the corpus from sourceURL, counts n-grams over its
	// text, and writes a complete bundle under outputDir/BundleID().
	// It returns the number of corpus words counted.
	Import(ctx context.Context, sourceURL, outputDir string) (uint64, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Adapter)
)

// Register adds an adapter to the registry. Adapters call it from init.
func Register(a Adapter) {
	mu.Lock()
	defer mu.Unlock()
	registry[a.ID()] = a
}

// Get looks an adapter up by ID.
func Get(id string) (Adapter, error) {
	mu.RLock()
	defer mu.RUnlock()
	a, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown corpus source: %q", id)
	}
	return a, nil
}

// All returns every registered adapter, ordered by ID.
func All() []Adapter {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Adapter, 0, len(registry))
	for _, a := range registry {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
