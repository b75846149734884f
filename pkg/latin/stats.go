package latin

import (
	"sync/atomic"

	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

// Stats counts processed words and per-rule hits. All counters are
// atomic and the rule map is fixed at construction, so concurrent
// normalization calls never contend on a lock.
type Stats struct {
	words   atomic.Uint64
	changed atomic.Uint64
	rules   map[string]*atomic.Uint64
}

func newStats(rs *ruleset.Set) *Stats {
	s := &Stats{rules: make(map[string]*atomic.Uint64)}
	for _, name := range uvRuleNames {
		s.rules[name] = new(atomic.Uint64)
	}
	for _, name := range longSRuleNames(rs) {
		s.rules[name] = new(atomic.Uint64)
	}
	return s
}

// word records one processed word and its change trail.
func (s *Stats) word(changes []Change) {
	s.words.Add(1)
	if len(changes) == 0 {
		return
	}
	s.changed.Add(1)
	for _, c := range changes {
		if ctr := s.rules[c.Rule]; ctr != nil {
			ctr.Add(1)
		}
	}
}

// StatsSnapshot is a point-in-time copy of the counters. Rules holds
// only the rules that fired at least once.
type StatsSnapshot struct {
	Words   uint64            `json:"words"`
	Changed uint64            `json:"changed"`
	Rules   map[string]uint64 `json:"rules"`
}

// Snapshot copies the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Words:   s.words.Load(),
		Changed: s.changed.Load(),
		Rules:   make(map[string]uint64),
	}
	for name, ctr := range s.rules {
		if n := ctr.Load(); n > 0 {
			snap.Rules[name] = n
		}
	}
	return snap
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	s.words.Store(0)
	s.changed.Store(0)
	for _, ctr := range s.rules {
		ctr.Store(0)
	}
}
