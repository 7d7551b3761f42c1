package services

import (
	"fmt"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// FallbackClassification is the configured account pair assigned when no rule
// matches, so every well-formed transaction is always classifiable.
type FallbackClassification struct {
	DebitAccountCode  string
	CreditAccountCode string
	Confidence        float64
}

// RuleMatch is the outcome of evaluating a transaction against a rule
// snapshot. Rule is nil when the fallback was used.
type RuleMatch struct {
	Rule              *domain.ClassificationRule
	DebitAccountCode  string
	CreditAccountCode string
	Confidence        float64
	Rationale         string
}

// MatchTransaction evaluates the transaction against the snapshot in order and
// returns the first matching rule. First-match, not best-score: evaluation
// order is the snapshot order (priority descending, declaration order on
// ties), which keeps outcomes predictable and auditable. The function is pure
// and safe to call from any number of goroutines over the same snapshot.
func MatchTransaction(txn domain.Transaction, snapshot []domain.ClassificationRule, fallback FallbackClassification) RuleMatch {
	for i := range snapshot {
		rule := &snapshot[i]
		if !ruleMatches(rule, &txn) {
			continue
		}
		rationale := fmt.Sprintf("matched rule %q", rule.Name)
		if rule.Rationale != "" {
			rationale = fmt.Sprintf("matched rule %q: %s", rule.Name, rule.Rationale)
		}
		return RuleMatch{
			Rule:              rule,
			DebitAccountCode:  rule.DebitAccountCode,
			CreditAccountCode: rule.CreditAccountCode,
			Confidence:        rule.Confidence,
			Rationale:         rationale,
		}
	}

	return RuleMatch{
		DebitAccountCode:  fallback.DebitAccountCode,
		CreditAccountCode: fallback.CreditAccountCode,
		Confidence:        fallback.Confidence,
		Rationale:         "no classification rule matched; assigned to uncategorized fallback accounts",
	}
}

// ruleMatches reports whether every specified condition of the rule holds.
// Cheap conditions (source equality, amount bounds) run before substring and
// pattern matches to bound the average cost per rule.
func ruleMatches(rule *domain.ClassificationRule, txn *domain.Transaction) bool {
	c := &rule.Conditions
	if c.Source != nil && *c.Source != txn.Source {
		return false
	}
	if c.Amount != nil && !c.Amount.Matches(txn.Amount) {
		return false
	}
	if c.Description != nil && !c.Description.Matches(txn.Description) {
		return false
	}
	if c.Counterparty != nil && !c.Counterparty.Matches(txn.Counterparty) {
		return false
	}
	if c.Reference != nil && !c.Reference.Matches(txn.Reference) {
		return false
	}
	return true
}
