package latin

import (
	"fmt"
	"os"

	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

// BackendEnv forces a backend at startup, overriding the built-in
// default. Valid values are "reference" and "turbo".
const BackendEnv = "ORTHOGRAPH_BACKEND"

// Engine is one interchangeable implementation of the two normalizers.
// Both engines answer the same contract and the conformance tests hold
// them to identical outputs, change for change.
type Engine interface {
	Name() string
	Accelerated() bool

	// WordUV rewrites the u/v distinction in a single word.
	WordUV(word string) (string, []Change)

	// WordLongS corrects long-s OCR artifacts in a single word.
	WordLongS(word string, applyPass2 bool) (string, []Change)
}

// BackendInfo reports which engine serves normalization calls and why it
// was selected.
type BackendInfo struct {
	Name        string `json:"name"`
	Accelerated bool   `json:"accelerated"`
	Reason      string `json:"reason"`
}

func describe(e Engine, reason string) BackendInfo {
	return BackendInfo{Name: e.Name(), Accelerated: e.Accelerated(), Reason: reason}
}

// Probe selects the engine for rs once at startup. A valid
// ORTHOGRAPH_BACKEND value wins; otherwise the build default applies.
// Probe never fails: an unknown override falls back to the default and
// says so in the reason.
func Probe(rs *ruleset.Set) (Engine, BackendInfo) {
	return probe(rs, 0)
}

func probe(rs *ruleset.Set, threshold float64) (Engine, BackendInfo) {
	if name := os.Getenv(BackendEnv); name != "" {
		if e, err := newEngine(name, rs, threshold); err == nil {
			return e, describe(e, "env "+BackendEnv)
		}
		e, _ := newEngine(defaultBackend, rs, threshold)
		return e, describe(e, fmt.Sprintf("unknown %s value %q, using %s", BackendEnv, name, defaultReason))
	}
	e, _ := newEngine(defaultBackend, rs, threshold)
	return e, describe(e, defaultReason)
}

// Select builds the named engine for rs.
func Select(rs *ruleset.Set, name string) (Engine, BackendInfo, error) {
	e, err := newEngine(name, rs, 0)
	if err != nil {
		return nil, BackendInfo{}, err
	}
	return e, describe(e, "configured"), nil
}

// newEngine builds a backend by name. A non-positive threshold takes the
// ruleset's own pass 2 threshold.
func newEngine(name string, rs *ruleset.Set, threshold float64) (Engine, error) {
	if threshold <= 0 {
		threshold = rs.LongS.Threshold
	}
	switch name {
	case "reference":
		return newReferenceEngine(rs, threshold), nil
	case "turbo":
		return newTurboEngine(rs, threshold), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want reference or turbo)", name)
	}
}
