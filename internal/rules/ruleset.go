package rules

import (
	"sort"
	"sync/atomic"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// snapshot is one immutable generation of the rule set.
type snapshot struct {
	// matching holds the enabled rules sorted by priority descending, with
	// declaration order as the tie-break.
	matching []domain.ClassificationRule
	// all holds every rule in declaration order, disabled ones included, for
	// audit and listing.
	all []domain.ClassificationRule
}

// RuleSet holds the current rule snapshot. Reloads are copy-on-write: matchers
// in flight keep the generation they started with, so a rule list never
// mutates underneath an evaluation.
type RuleSet struct {
	current atomic.Pointer[snapshot]
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	s := &RuleSet{}
	s.current.Store(&snapshot{})
	return s
}

// Replace installs a new generation of rules, given in declaration order.
// The matching order is priority descending; rules with equal priority keep
// their declaration order, so the result is deterministic regardless of how
// ties are declared.
func (s *RuleSet) Replace(rules []domain.ClassificationRule) {
	all := make([]domain.ClassificationRule, len(rules))
	copy(all, rules)

	matching := make([]domain.ClassificationRule, 0, len(all))
	for _, r := range all {
		if r.Enabled {
			matching = append(matching, r)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Priority > matching[j].Priority
	})

	s.current.Store(&snapshot{matching: matching, all: all})
}

// Snapshot returns the enabled rules in matching order. The returned slice is
// shared and must not be modified.
func (s *RuleSet) Snapshot() []domain.ClassificationRule {
	return s.current.Load().matching
}

// All returns every rule in declaration order, including disabled ones.
func (s *RuleSet) All() []domain.ClassificationRule {
	return s.current.Load().all
}
