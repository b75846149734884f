// Package latin normalizes early-modern and OCR'd Latin text: it
// restores the vowel u / consonant v distinction of u-only spelling and
// repairs long-s glyphs (ſ) misread by OCR as f.
//
// The package-level functions run on the embedded starter ruleset:
//
//	latin.Normalize("Gallia eft omnis diuisa")  // "Gallia est omnis divisa"
//	latin.NormalizeUV("Arma uirumque cano")     // "Arma virumque cano"
//
// A Pipeline built with New gives control over the ruleset, the backend
// and pass 2 of the long-s corrector. A Pipeline is safe for concurrent
// use; the rule and frequency tables it runs on are immutable after
// load, so calls never take a lock.
//
// Every transformation preserves length and per-character case, and
// only letters inside words change: punctuation, digits and whitespace
// pass through byte for byte.
package latin

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

// Pipeline applies the normalizers word by word over segmented text.
// Long-s correction always runs before u/v classification, matching how
// the rule tables were tuned.
type Pipeline struct {
	rs     *ruleset.Set
	engine Engine
	info   BackendInfo
	pass2  bool
	stats  *Stats
}

type config struct {
	rs        *ruleset.Set
	backend   string
	pass2     bool
	threshold float64
}

// Option configures a Pipeline.
type Option func(*config)

// WithRuleset runs the pipeline on rs instead of the embedded starter
// bundle.
func WithRuleset(rs *ruleset.Set) Option {
	return func(c *config) { c.rs = rs }
}

// WithBackend pins the backend by name instead of probing.
func WithBackend(name string) Option {
	return func(c *config) { c.backend = name }
}

// WithPass2 toggles pass 2 of the long-s corrector. It is on by default.
func WithPass2(enabled bool) Option {
	return func(c *config) { c.pass2 = enabled }
}

// WithThreshold overrides the ruleset's pass 2 frequency-ratio threshold.
func WithThreshold(t float64) Option {
	return func(c *config) { c.threshold = t }
}

// New builds a Pipeline. With no options it loads the embedded starter
// ruleset and probes for the backend.
func New(opts ...Option) (*Pipeline, error) {
	cfg := config{pass2: true}
	for _, o := range opts {
		o(&cfg)
	}

	rs := cfg.rs
	if rs == nil {
		var err error
		rs, err = ruleset.Default()
		if err != nil {
			return nil, err
		}
	}

	var engine Engine
	var info BackendInfo
	if cfg.backend != "" {
		e, err := newEngine(cfg.backend, rs, cfg.threshold)
		if err != nil {
			return nil, err
		}
		engine, info = e, describe(e, "configured")
	} else {
		engine, info = probe(rs, cfg.threshold)
	}

	return &Pipeline{
		rs:     rs,
		engine: engine,
		info:   info,
		pass2:  cfg.pass2,
		stats:  newStats(rs),
	}, nil
}

// run segments text, transforms each word through the requested phases
// and reassembles the result. Separators are copied through untouched.
// Collected change positions are offset into text's rune coordinates.
func (p *Pipeline) run(text string, longS, uv, collect bool) (string, []Change) {
	segs := SplitSegments(text)
	var b strings.Builder
	b.Grow(len(text))

	var all []Change
	runeOff := 0
	for _, seg := range segs {
		if !seg.Word {
			b.WriteString(seg.Text)
			runeOff += utf8.RuneCountInString(seg.Text)
			continue
		}

		w := seg.Text
		var changes []Change
		if longS {
			var cs []Change
			w, cs = p.engine.WordLongS(w, p.pass2)
			changes = append(changes, cs...)
		}
		if uv {
			var cs []Change
			w, cs = p.engine.WordUV(w)
			changes = append(changes, cs...)
		}

		p.stats.word(changes)
		if collect && len(changes) > 0 {
			for i := range changes {
				changes[i].Pos += runeOff
			}
			all = append(all, changes...)
		}
		b.WriteString(w)
		runeOff += utf8.RuneCountInString(seg.Text)
	}
	return b.String(), all
}

// Normalize applies the full pipeline: long-s correction, then u/v.
func (p *Pipeline) Normalize(text string) string {
	out, _ := p.run(text, true, true, false)
	return out
}

// NormalizeUV restores the u/v distinction without touching long-s
// artifacts.
func (p *Pipeline) NormalizeUV(text string) string {
	out, _ := p.run(text, false, true, false)
	return out
}

// NormalizeVU collapses the distinction back to u-only spelling: every v
// becomes u, case preserved. The inverse preparation step for models
// that expect u-only Latin.
func (p *Pipeline) NormalizeVU(text string) string {
	return vuReplacer.Replace(text)
}

// CorrectLongS repairs long-s artifacts without touching u/v.
func (p *Pipeline) CorrectLongS(text string) string {
	out, _ := p.run(text, true, false, false)
	return out
}

// CorrectWord runs the long-s corrector on a single word and returns the
// applied rule trail. An allowlisted or clean word comes back unchanged
// with an empty trail.
func (p *Pipeline) CorrectWord(word string) (string, []Change) {
	out, changes := p.engine.WordLongS(word, p.pass2)
	p.stats.word(changes)
	return out, changes
}

// Explain runs the full pipeline and reports every change. Changes
// appear in application order: long-s rewrites before u/v decisions,
// words left to right.
func (p *Pipeline) Explain(text string) *Result {
	out, changes := p.run(text, true, true, true)
	return &Result{Original: text, Normalized: out, Changes: changes}
}

// ExplainUV reports every u/v decision that changed a letter.
func (p *Pipeline) ExplainUV(text string) *Result {
	out, changes := p.run(text, false, true, true)
	return &Result{Original: text, Normalized: out, Changes: changes}
}

// ExplainLongS reports every long-s correction.
func (p *Pipeline) ExplainLongS(text string) *Result {
	out, changes := p.run(text, true, false, true)
	return &Result{Original: text, Normalized: out, Changes: changes}
}

// Pass2 reports whether the probabilistic long-s pass is enabled.
func (p *Pipeline) Pass2() bool { return p.pass2 }

// Pass2Variant returns a pipeline sharing this pipeline's engine, ruleset
// and counters, with pass 2 forced on or off. Cheap enough to call per
// request.
func (p *Pipeline) Pass2Variant(enabled bool) *Pipeline {
	if enabled == p.pass2 {
		return p
	}
	v := *p
	v.pass2 = enabled
	return &v
}

// Backend reports the engine serving this pipeline.
func (p *Pipeline) Backend() BackendInfo { return p.info }

// Ruleset returns the loaded rule bundle the pipeline runs on.
func (p *Pipeline) Ruleset() *ruleset.Set { return p.rs }

// Stats returns a snapshot of the word and rule counters.
func (p *Pipeline) Stats() StatsSnapshot { return p.stats.Snapshot() }

// ResetStats zeroes the counters.
func (p *Pipeline) ResetStats() { p.stats.Reset() }

var vuReplacer = strings.NewReplacer("v", "u", "V", "U")

var (
	defaultOnce sync.Once
	defaultPipe *Pipeline
	defaultErr  error
)

// Default returns the shared pipeline over the embedded starter ruleset,
// built once per process.
func Default() (*Pipeline, error) {
	defaultOnce.Do(func() {
		defaultPipe, defaultErr = New()
	})
	return defaultPipe, defaultErr
}

func mustDefault() *Pipeline {
	p, err := Default()
	if err != nil {
		panic("latin: embedded ruleset unavailable: " + err.Error())
	}
	return p
}

// Normalize applies the full pipeline with the shared default pipeline.
// It panics only if the embedded ruleset cannot load, which indicates a
// broken build.
func Normalize(text string) string { return mustDefault().Normalize(text) }

// NormalizeUV restores the u/v distinction with the default pipeline.
func NormalizeUV(text string) string { return mustDefault().NormalizeUV(text) }

// NormalizeVU collapses v back to u, case preserved.
func NormalizeVU(text string) string { return vuReplacer.Replace(text) }

// CorrectLongS repairs long-s artifacts with the default pipeline.
func CorrectLongS(text string) string { return mustDefault().CorrectLongS(text) }
