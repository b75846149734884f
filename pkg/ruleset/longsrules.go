package ruleset

import (
	"fmt"
	"strings"
)

// Rewrite is one deterministic long-s correction: an impossible letter
// sequence and its repair. Order within the pass 1 list is significant;
// longer patterns come first so they win over their own substrings.
type Rewrite struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LongSRules holds the long-s corrector's data: the ordered pass 1
// rewrites, the word-final f rule toggle, the pass 2 allowlist, and the
// frequency-ratio threshold pass 2 needs before it rewrites anything.
type LongSRules struct {
	Pass1     []Rewrite `yaml:"pass1"`
	FinalFS   bool      `yaml:"final_f_to_s"`
	Threshold float64   `yaml:"threshold"`
	Allowlist []string  `yaml:"allowlist"`

	allowSet map[string]bool
}

func (l *LongSRules) compile() error {
	if len(l.Pass1) == 0 {
		return fmt.Errorf("longs rules: empty pass1")
	}
	for i, rw := range l.Pass1 {
		if rw.From == "" || rw.To == "" {
			return fmt.Errorf("longs rules: pass1[%d]: empty pattern", i)
		}
		if len(rw.From) != len(rw.To) {
			// Same-length rewrites keep per-character case restoration exact.
			return fmt.Errorf("longs rules: pass1[%d]: %q -> %q changes length", i, rw.From, rw.To)
		}
		if rw.From != strings.ToLower(rw.From) {
			return fmt.Errorf("longs rules: pass1[%d]: pattern %q must be lowercase", i, rw.From)
		}
	}
	if l.Threshold <= 0 {
		return fmt.Errorf("longs rules: threshold must be positive, got %v", l.Threshold)
	}
	l.allowSet = make(map[string]bool, len(l.Allowlist))
	for _, w := range l.Allowlist {
		l.allowSet[strings.ToLower(w)] = true
	}
	return nil
}

// Allowlisted reports whether the lowercased word is a known genuine f-word
// that pass 2 must never touch.
func (l *LongSRules) Allowlisted(word string) bool { return l.allowSet[word] }

// AllowlistSize returns the number of allowlisted words.
func (l *LongSRules) AllowlistSize() int { return len(l.allowSet) }
