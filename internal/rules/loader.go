// Package rules loads declarative classification rules and holds them as an
// ordered, immutable snapshot for the matcher.
package rules

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ledgerkit/ledgerkit/internal/apperrors"
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ruleFile is the top-level structure of a rules YAML file.
type ruleFile struct {
	Rules []RuleDefinition `yaml:"rules"`
}

// RuleDefinition is the declarative form of a classification rule as written
// in the rules file, before validation and compilation.
type RuleDefinition struct {
	Name       string               `yaml:"name"`
	Priority   int                  `yaml:"priority"`
	Conditions ConditionsDefinition `yaml:"conditions"`
	Accounts   AccountPairDef       `yaml:"accounts"`
	Confidence float64              `yaml:"confidence"`
	Rationale  string               `yaml:"rationale"`
	Enabled    *bool                `yaml:"enabled"` // nil means enabled
}

// AccountPairDef names the target accounts by code.
type AccountPairDef struct {
	Debit  string `yaml:"debit"`
	Credit string `yaml:"credit"`
}

// ConditionsDefinition mirrors domain.RuleConditions in declarative form.
// Every field is optional; absent means wildcard.
type ConditionsDefinition struct {
	Description  *TextConditionDef   `yaml:"description"`
	Counterparty *TextConditionDef   `yaml:"counterparty"`
	Reference    *TextConditionDef   `yaml:"reference"`
	Amount       *AmountConditionDef `yaml:"amount"`
	Source       *string             `yaml:"source"`
}

// TextConditionDef accepts either a bare scalar (case-insensitive substring)
// or a mapping with an explicit "contains" or "pattern" key.
type TextConditionDef struct {
	Contains string `yaml:"contains"`
	Pattern  string `yaml:"pattern"`
}

// UnmarshalYAML lets rule authors write `description: stationery` as shorthand
// for `description: {contains: stationery}`.
func (d *TextConditionDef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Contains = node.Value
		return nil
	}
	type plain TextConditionDef
	return node.Decode((*plain)(d))
}

// AmountConditionDef bounds the signed transaction amount.
type AmountConditionDef struct {
	Min    *float64 `yaml:"min"`
	Max    *float64 `yaml:"max"`
	Equals *float64 `yaml:"equals"`
}

// ParseRulesFile reads rule definitions from a YAML file, preserving
// declaration order.
func ParseRulesFile(path string) ([]RuleDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules parses rule definitions from raw YAML.
func ParseRules(data []byte) ([]RuleDefinition, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: malformed rules file: %v", apperrors.ErrValidation, err)
	}
	return file.Rules, nil
}

// Compile validates each definition and compiles it into a matchable rule.
// knownAccountCodes holds the resolvable active account codes. One invalid
// rule does not block the others: compilation returns every valid rule in
// declaration order plus one RuleValidationError per rejected rule.
func Compile(defs []RuleDefinition, knownAccountCodes map[string]struct{}) ([]domain.ClassificationRule, []*apperrors.RuleValidationError) {
	compiled := make([]domain.ClassificationRule, 0, len(defs))
	var invalid []*apperrors.RuleValidationError
	seen := make(map[string]struct{}, len(defs))

	reject := func(name, reason string) {
		invalid = append(invalid, &apperrors.RuleValidationError{RuleName: name, Reason: reason})
	}

	for _, def := range defs {
		if def.Name == "" {
			reject("", "rule name is required")
			continue
		}
		if _, dup := seen[def.Name]; dup {
			reject(def.Name, "duplicate rule name")
			continue
		}
		if def.Confidence < 0 || def.Confidence > 1 {
			reject(def.Name, fmt.Sprintf("confidence %v is outside [0,1]", def.Confidence))
			continue
		}
		if def.Accounts.Debit == "" || def.Accounts.Credit == "" {
			reject(def.Name, "both debit and credit account codes are required")
			continue
		}
		if def.Accounts.Debit == def.Accounts.Credit {
			reject(def.Name, "debit and credit account codes must differ")
			continue
		}
		if _, ok := knownAccountCodes[def.Accounts.Debit]; !ok {
			reject(def.Name, fmt.Sprintf("debit account code %q does not resolve to an active account", def.Accounts.Debit))
			continue
		}
		if _, ok := knownAccountCodes[def.Accounts.Credit]; !ok {
			reject(def.Name, fmt.Sprintf("credit account code %q does not resolve to an active account", def.Accounts.Credit))
			continue
		}

		conditions, err := compileConditions(def.Conditions)
		if err != nil {
			reject(def.Name, err.Error())
			continue
		}

		seen[def.Name] = struct{}{}
		compiled = append(compiled, domain.ClassificationRule{
			Name:              def.Name,
			Priority:          def.Priority,
			Conditions:        conditions,
			DebitAccountCode:  def.Accounts.Debit,
			CreditAccountCode: def.Accounts.Credit,
			Confidence:        def.Confidence,
			Rationale:         def.Rationale,
			Enabled:           def.Enabled == nil || *def.Enabled,
		})
	}

	return compiled, invalid
}

func compileConditions(def ConditionsDefinition) (domain.RuleConditions, error) {
	var conditions domain.RuleConditions

	compileText := func(field string, td *TextConditionDef) (*domain.TextCondition, error) {
		if td == nil {
			return nil, nil
		}
		if td.Pattern != "" {
			re, err := regexp.Compile("(?i)" + td.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%s pattern does not compile: %v", field, err)
			}
			return &domain.TextCondition{Kind: domain.MatchPattern, Pattern: re}, nil
		}
		if td.Contains == "" {
			return nil, fmt.Errorf("%s condition needs a contains value or a pattern", field)
		}
		return &domain.TextCondition{Kind: domain.MatchSubstring, Substring: strings.ToLower(td.Contains)}, nil
	}

	var err error
	if conditions.Description, err = compileText("description", def.Description); err != nil {
		return conditions, err
	}
	if conditions.Counterparty, err = compileText("counterparty", def.Counterparty); err != nil {
		return conditions, err
	}
	if conditions.Reference, err = compileText("reference", def.Reference); err != nil {
		return conditions, err
	}

	if def.Amount != nil {
		amount := &domain.AmountCondition{}
		if def.Amount.Min != nil {
			v := decimal.NewFromFloat(*def.Amount.Min)
			amount.Min = &v
		}
		if def.Amount.Max != nil {
			v := decimal.NewFromFloat(*def.Amount.Max)
			amount.Max = &v
		}
		if def.Amount.Equals != nil {
			v := decimal.NewFromFloat(*def.Amount.Equals)
			amount.Equals = &v
		}
		if amount.Min != nil && amount.Max != nil && amount.Min.GreaterThan(*amount.Max) {
			return conditions, fmt.Errorf("amount min %s exceeds max %s", amount.Min.String(), amount.Max.String())
		}
		conditions.Amount = amount
	}

	if def.Source != nil {
		conditions.Source = def.Source
	}

	return conditions, nil
}
