package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scriptorivm/orthograph/pkg/importer"
)

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "", "adapter ID to import (e.g. latinlibrary)")
	all := fs.Bool("all", false, "import all available sources")
	outputDir := fs.String("output-dir", "bundles", "output directory for rule bundles")
	urlOverride := fs.String("url", "", "override the source URL for this adapter (persisted)")
	fs.Parse(args)

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outputDir, err)
		os.Exit(1)
	}

	sdb, err := importer.OpenSourceDB(filepath.Join(*outputDir, "sources.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sources.db: %v\n", err)
		os.Exit(1)
	}
	defer sdb.Close()

	if err := sdb.Seed(importer.All()); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding sources: %v\n", err)
		os.Exit(1)
	}

	if !*all && *source == "" {
		fmt.Println("Available sources:")
		fmt.Println()
		sources, _ := sdb.ListSources()
		for _, src := range sources {
			imported := ""
			if src.LastWords != nil && *src.LastWords > 0 {
				imported = fmt.Sprintf("  [%d words]", *src.LastWords)
			}
			fmt.Printf("  %-18s  %s  (-> %s)%s\n", src.AdapterID, src.Description, src.BundleID, imported)
		}
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  orthograph import --source <id> [--output-dir <dir>] [--url <override>]")
		fmt.Println("  orthograph import --all [--output-dir <dir>]")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	if *all {
		for _, a := range importer.All() {
			if err := runImport(ctx, sdb, a, *outputDir); err != nil {
				fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", a.ID(), err)
			}
		}
		return
	}

	a, err := importer.Get(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Println("\nAvailable sources:")
		for _, a := range importer.All() {
			fmt.Printf("  %s\n", a.ID())
		}
		os.Exit(1)
	}

	if *urlOverride != "" {
		if err := sdb.SetURL(a.ID(), *urlOverride); err != nil {
			fmt.Fprintf(os.Stderr, "[%s] ERROR (URL override): %v\n", a.ID(), err)
			os.Exit(1)
		}
	}

	if err := runImport(ctx, sdb, a, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", a.ID(), err)
		os.Exit(1)
	}
}

// runImport runs one adapter end to end: fetch, count, write the bundle,
// record the outcome, then validate what was written.
func runImport(ctx context.Context, sdb *importer.SourceDB, a importer.Adapter, outputDir string) error {
	url, err := sdb.GetURL(a.ID())
	if err != nil {
		return fmt.Errorf("resolve URL: %w", err)
	}

	fmt.Printf("[%s] importing...\n", a.ID())
	words, err := a.Import(ctx, url, outputDir)

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	if rerr := sdb.RecordImport(a.ID(), words, errMsg); rerr != nil {
		fmt.Fprintf(os.Stderr, "[%s] record outcome: %v\n", a.ID(), rerr)
	}
	if err != nil {
		return err
	}

	bundleDir := filepath.Join(outputDir, a.BundleID())
	rep, err := importer.Validate(bundleDir)
	if err != nil {
		return fmt.Errorf("validate written bundle: %w", err)
	}
	if !rep.OK() {
		fmt.Fprintf(os.Stderr, "[%s] bundle has problems:\n", a.ID())
		for _, p := range rep.Problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
	}

	fmt.Printf("[%s] OK -> %s/ (%d words)\n", a.ID(), bundleDir, words)
	return nil
}
