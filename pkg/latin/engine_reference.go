package latin

import "github.com/scriptorivm/orthograph/pkg/ruleset"

// referenceEngine is the rune-by-rune engine that defines the cascade
// semantics. It handles the full rune range and takes no shortcuts; the
// turbo engine is checked against it.
type referenceEngine struct {
	rs        *ruleset.Set
	threshold float64
}

func newReferenceEngine(rs *ruleset.Set, threshold float64) *referenceEngine {
	return &referenceEngine{rs: rs, threshold: threshold}
}

func (e *referenceEngine) Name() string      { return "reference" }
func (e *referenceEngine) Accelerated() bool { return false }

func (e *referenceEngine) WordUV(word string) (string, []Change) {
	return uvWord(e.rs, word)
}

func (e *referenceEngine) WordLongS(word string, applyPass2 bool) (string, []Change) {
	return longSWord(e.rs, word, applyPass2, e.threshold)
}
