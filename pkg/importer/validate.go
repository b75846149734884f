package importer

import (
	"fmt"
	"strings"

	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

// Report summarizes one bundle validation.
type Report struct {
	BundleID  string
	Version   string
	Words     uint64
	Bigrams   int
	Trigrams  int
	Quadgrams int
	Allowlist int
	Problems  []string
}

// OK reports whether the bundle passed every check.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

// requiredTrigrams are the keys the frequency pass of the long-s corrector
// cannot decide without: the f/s competition at word start before u and e.
var requiredTrigrams = []string{"<fu", "<su", "<fe", "<se"}

// Validate loads the bundle at dir and checks it is complete enough to
// drive both correction passes. Asset checksums are verified by the load
// itself; a checksum mismatch surfaces as the returned error.
func Validate(dir string) (*Report, error) {
	set, err := ruleset.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", dir, err)
	}

	bi, tri, quad := set.NGrams.Sizes()
	rep := &Report{
		BundleID:  set.Manifest.ID,
		Version:   set.Manifest.Version,
		Words:     set.Manifest.Words,
		Bigrams:   bi,
		Trigrams:  tri,
		Quadgrams: quad,
		Allowlist: set.LongS.AllowlistSize(),
	}

	if rep.Words == 0 {
		rep.Problems = append(rep.Problems, "manifest carries no corpus word count")
	}
	for _, key := range requiredTrigrams {
		if set.NGrams.Trigram(key) == 0 {
			rep.Problems = append(rep.Problems, fmt.Sprintf("trigram %q unseen in corpus", key))
		}
	}
	var fi, si bool
	set.NGrams.EachQuadgram(func(key string, _ uint64) {
		switch {
		case strings.HasPrefix(key, "<fi"):
			fi = true
		case strings.HasPrefix(key, "<si"):
			si = true
		}
	})
	if !fi || !si {
		rep.Problems = append(rep.Problems, "no <fi/<si quadgram pair in corpus")
	}
	if rep.Allowlist == 0 {
		rep.Problems = append(rep.Problems, "empty allowlist")
	}

	return rep, nil
}
