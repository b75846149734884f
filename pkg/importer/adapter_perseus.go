package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
)

func init() {
	Register(&perseusAdapter{})
}

// perseusAdapter builds a bundle from the Perseus canonical Latin
// literature repository: TEI XML editions, one file per text. Only Latin
// editions are counted; the archive also carries English translations.
type perseusAdapter struct{}

func (a *perseusAdapter) ID() string          { return "perseus-latinlit" }
func (a *perseusAdapter) BundleID() string    { return "latin-perseus" }
func (a *perseusAdapter) Description() string { return "Perseus canonical Latin literature (TEI XML)" }
func (a *perseusAdapter) DefaultURL() string {
	return "https://github.com/PerseusDL/canonical-latinLit/archive/refs/heads/master.zip"
}
func (a *perseusAdapter) License() string { return "CC BY-SA 4.0" }

func (a *perseusAdapter) Import(ctx context.Context, sourceURL, outputDir string) (uint64, error) {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return 0, err
	}
	defer os.RemoveAll(dlDir)

	zipPath := filepath.Join(dlDir, "latinlit.zip")
	fmt.Printf("  downloading %s...\n", sourceURL)
	if err := downloadFile(ctx, sourceURL, zipPath); err != nil {
		return 0, fmt.Errorf("download: %w", err)
	}

	files, err := unzipFile(zipPath, dlDir)
	if err != nil {
		return 0, fmt.Errorf("unzip: %w", err)
	}

	counter := NewNGramCounter()
	var counted, skipped int
	for _, f := range files {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		if !isLatinEdition(f) {
			continue
		}
		if err := countTEIFile(f, counter); err != nil {
			skipped++
			continue
		}
		counted++
	}
	if counted == 0 {
		return 0, fmt.Errorf("no parseable Latin TEI editions in archive")
	}
	fmt.Printf("  %d editions (%d skipped), %d words\n", counted, skipped, counter.Words())

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

// isLatinEdition matches Perseus file names like phi0448.phi001.perseus-lat2.xml,
// excluding -eng translations and -grc originals.
func isLatinEdition(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(name, ".xml") && strings.Contains(name, "-lat")
}

// countTEIFile extracts the text body of one TEI document and feeds it to
// the counter. Header metadata (titles, editor names) is not counted.
func countTEIFile(path string, c *NGramCounter) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	bodies := xmlquery.Find(doc, "//body")
	if len(bodies) == 0 {
		return fmt.Errorf("%s: no text body", filepath.Base(path))
	}
	for _, b := range bodies {
		c.AddText(b.InnerText())
	}
	return nil
}
