package ruleset

import (
	"embed"
	"io/fs"
	"os"
)

// Starter bundle: curated rule tables plus compact n-gram tables calibrated
// on a 842K-word reference corpus. Full tables are built by the importer.
//
//go:embed assets
var embeddedAssets embed.FS

func dirFS(dir string) fs.FS { return os.DirFS(dir) }

// StarterAssets exposes the embedded starter bundle as a read-only fs.FS.
// The importer copies the curated rule files from it into every corpus
// bundle it builds; only the frequency tables are corpus-specific.
func StarterAssets() (fs.FS, error) {
	return fs.Sub(embeddedAssets, "assets")
}
