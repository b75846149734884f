package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func init() {
	Register(&latinLibraryAdapter{})
}

// latinLibraryAdapter builds a bundle from The Latin Library corpus: one
// plain-text file per work, distributed as a ZIP archive.
type latinLibraryAdapter struct{}

func (a *latinLibraryAdapter) ID() string          { return "latinlibrary" }
func (a *latinLibraryAdapter) BundleID() string    { return "latin-ll" }
func (a *latinLibraryAdapter) Description() string { return "The Latin Library plain-text corpus" }
func (a *latinLibraryAdapter) DefaultURL() string {
	return "https://github.com/cltk/lat_text_latin_library/archive/refs/heads/master.zip"
}
func (a *latinLibraryAdapter) License() string { return "Public domain" }

func (a *latinLibraryAdapter) Import(ctx context.Context, sourceURL, outputDir string) (uint64, error) {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return 0, err
	}
	defer os.RemoveAll(dlDir)

	zipPath := filepath.Join(dlDir, "latinlibrary.zip")
	fmt.Printf("  downloading %s...\n", sourceURL)
	if err := downloadFile(ctx, sourceURL, zipPath); err != nil {
		return 0, fmt.Errorf("download: %w", err)
	}

	files, err := unzipFile(zipPath, dlDir)
	if err != nil {
		return 0, fmt.Errorf("unzip: %w", err)
	}

	counter := NewNGramCounter()
	var counted int
	for _, f := range files {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		if !strings.HasSuffix(strings.ToLower(f), ".txt") {
			continue
		}
		if err := countTextFile(f, counter); err != nil {
			fmt.Printf("  skipping %s: %v\n", filepath.Base(f), err)
			continue
		}
		counted++
	}
	if counted == 0 {
		return 0, fmt.Errorf("no .txt files in archive")
	}
	fmt.Printf("  %d files, %d words\n", counted, counter.Words())

	bundleDir := filepath.Join(outputDir, a.BundleID())
	err = counter.WriteBundle(bundleDir, BundleMeta{
		ID:        a.BundleID(),
		Version:   time.Now().Format("2006-01"),
		Source:    a.Description(),
		SourceURL: sourceURL,
		License:   a.License(),
	})
	if err != nil {
		return 0, err
	}
	return counter.Words(), nil
}

// countTextFile streams one plain-text corpus file into the counter.
func countTextFile(path string, c *NGramCounter) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.AddReader(f)
}
