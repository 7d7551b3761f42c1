package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// TextMatchKind distinguishes the two supported text condition kinds so that
// evaluation never depends on runtime type inspection.
type TextMatchKind string

const (
	MatchSubstring TextMatchKind = "SUBSTRING" // case-insensitive substring
	MatchPattern   TextMatchKind = "PATTERN"   // compiled regular expression
)

// TextCondition matches a transaction text field either by case-insensitive
// substring or by a pattern compiled at rule-load time.
type TextCondition struct {
	Kind      TextMatchKind
	Substring string         // lowercased at load time when Kind == MatchSubstring
	Pattern   *regexp.Regexp // non-nil when Kind == MatchPattern
}

// Matches reports whether the condition holds for the given field value.
func (c *TextCondition) Matches(value string) bool {
	switch c.Kind {
	case MatchSubstring:
		return strings.Contains(strings.ToLower(value), c.Substring)
	case MatchPattern:
		return c.Pattern.MatchString(value)
	}
	return false
}

// AmountCondition matches the signed transaction amount against an inclusive
// [min,max] range and/or exact equality. Nil bounds are wildcards.
type AmountCondition struct {
	Min    *decimal.Decimal
	Max    *decimal.Decimal
	Equals *decimal.Decimal
}

// Matches reports whether the signed amount satisfies every specified bound.
func (c *AmountCondition) Matches(amount decimal.Decimal) bool {
	if c.Min != nil && amount.LessThan(*c.Min) {
		return false
	}
	if c.Max != nil && amount.GreaterThan(*c.Max) {
		return false
	}
	if c.Equals != nil && !amount.Equal(*c.Equals) {
		return false
	}
	return true
}

// RuleConditions is the condition set of a classification rule. Every field is
// optional; an absent condition always holds. A rule matches a transaction iff
// every specified condition holds.
type RuleConditions struct {
	Description  *TextCondition
	Counterparty *TextCondition
	Reference    *TextCondition
	Amount       *AmountCondition
	Source       *string // exact string equality
}

// ClassificationRule maps matching transactions to a debit/credit account pair.
type ClassificationRule struct {
	Name              string         `json:"name"`     // Unique within the rule set
	Priority          int            `json:"priority"` // Higher priority rules are evaluated first
	Conditions        RuleConditions `json:"-"`
	DebitAccountCode  string         `json:"debitAccountCode"`
	CreditAccountCode string         `json:"creditAccountCode"`
	Confidence        float64        `json:"confidence"` // In [0,1]
	Rationale         string         `json:"rationale"`
	Enabled           bool           `json:"enabled"` // Disabled rules are listed but never matched
}
