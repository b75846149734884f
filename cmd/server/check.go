package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/scriptorivm/orthograph/pkg/importer"
)

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: orthograph check <bundle-dir> [<bundle-dir>...]")
		os.Exit(1)
	}

	failed := false
	for _, dir := range fs.Args() {
		rep, err := importer.Validate(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", dir, err)
			failed = true
			continue
		}

		fmt.Printf("%s: %s %s (%d words, %d/%d/%d grams, %d allowlisted)\n",
			dir, rep.BundleID, rep.Version, rep.Words,
			rep.Bigrams, rep.Trigrams, rep.Quadgrams, rep.Allowlist)
		for _, p := range rep.Problems {
			fmt.Printf("  problem: %s\n", p)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
