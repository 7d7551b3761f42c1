package rules_test

import (
	"testing"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAccountCodes = map[string]struct{}{
	"1100": {},
	"4100": {},
	"6000": {},
	"9999": {},
}

func TestParseRules_ShorthandAndExplicitText(t *testing.T) {
	data := []byte(`
rules:
  - name: shorthand
    priority: 10
    conditions:
      description: stationery
    accounts:
      debit: "6000"
      credit: "1100"
    confidence: 0.8
  - name: explicit
    priority: 5
    conditions:
      description:
        pattern: "fee$"
    accounts:
      debit: "6000"
      credit: "1100"
    confidence: 0.9
`)
	defs, err := rules.ParseRules(data)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "stationery", defs[0].Conditions.Description.Contains)
	assert.Equal(t, "fee$", defs[1].Conditions.Description.Pattern)
}

func TestParseRules_MalformedYAML(t *testing.T) {
	_, err := rules.ParseRules([]byte("rules:\n  - name: [broken"))
	require.Error(t, err)
}

func TestCompile_ValidRule(t *testing.T) {
	defs := []rules.RuleDefinition{
		{
			Name:     "bank-fee",
			Priority: 100,
			Conditions: rules.ConditionsDefinition{
				Description: &rules.TextConditionDef{Contains: "Service Fee"},
			},
			Accounts:   rules.AccountPairDef{Debit: "6000", Credit: "1100"},
			Confidence: 0.95,
			Rationale:  "Recurring bank fee",
		},
	}

	compiled, invalid := rules.Compile(defs, testAccountCodes)
	require.Empty(t, invalid)
	require.Len(t, compiled, 1)

	rule := compiled[0]
	assert.Equal(t, "bank-fee", rule.Name)
	assert.True(t, rule.Enabled)
	require.NotNil(t, rule.Conditions.Description)
	// Substrings are lowercased at load time for case-insensitive matching.
	assert.True(t, rule.Conditions.Description.Matches("SERVICE FEE MARCH"))
}

func TestCompile_InvalidRulesAreIsolated(t *testing.T) {
	enabled := false
	defs := []rules.RuleDefinition{
		{Name: "good-one", Accounts: rules.AccountPairDef{Debit: "6000", Credit: "1100"}, Confidence: 0.5},
		{Name: "", Accounts: rules.AccountPairDef{Debit: "6000", Credit: "1100"}},
		{Name: "bad-confidence", Accounts: rules.AccountPairDef{Debit: "6000", Credit: "1100"}, Confidence: 1.5},
		{Name: "same-pair", Accounts: rules.AccountPairDef{Debit: "1100", Credit: "1100"}},
		{Name: "unknown-account", Accounts: rules.AccountPairDef{Debit: "0000", Credit: "1100"}},
		{Name: "good-one", Accounts: rules.AccountPairDef{Debit: "6000", Credit: "1100"}, Confidence: 0.5},
		{
			Name:       "bad-pattern",
			Accounts:   rules.AccountPairDef{Debit: "6000", Credit: "1100"},
			Conditions: rules.ConditionsDefinition{Description: &rules.TextConditionDef{Pattern: "("}},
		},
		{Name: "good-two", Accounts: rules.AccountPairDef{Debit: "4100", Credit: "1100"}, Confidence: 0.9, Enabled: &enabled},
	}

	compiled, invalid := rules.Compile(defs, testAccountCodes)

	require.Len(t, compiled, 2)
	assert.Equal(t, "good-one", compiled[0].Name)
	assert.Equal(t, "good-two", compiled[1].Name)
	assert.False(t, compiled[1].Enabled)

	require.Len(t, invalid, 6)
	reasons := make(map[string]string, len(invalid))
	for _, e := range invalid {
		reasons[e.RuleName] = e.Reason
	}
	assert.Contains(t, reasons[""], "name is required")
	assert.Contains(t, reasons["bad-confidence"], "outside [0,1]")
	assert.Contains(t, reasons["same-pair"], "must differ")
	assert.Contains(t, reasons["unknown-account"], "does not resolve")
	assert.Contains(t, reasons["good-one"], "duplicate")
	assert.Contains(t, reasons["bad-pattern"], "pattern does not compile")
}

func TestCompile_AmountBounds(t *testing.T) {
	min, max := -10.0, -100.0
	defs := []rules.RuleDefinition{
		{
			Name:       "inverted-range",
			Accounts:   rules.AccountPairDef{Debit: "6000", Credit: "1100"},
			Conditions: rules.ConditionsDefinition{Amount: &rules.AmountConditionDef{Min: &min, Max: &max}},
		},
	}

	compiled, invalid := rules.Compile(defs, testAccountCodes)
	assert.Empty(t, compiled)
	require.Len(t, invalid, 1)
	assert.Contains(t, invalid[0].Reason, "exceeds max")
}

func TestCompile_AmountConditionValues(t *testing.T) {
	max := 0.0
	defs := []rules.RuleDefinition{
		{
			Name:       "outflow",
			Accounts:   rules.AccountPairDef{Debit: "6000", Credit: "1100"},
			Conditions: rules.ConditionsDefinition{Amount: &rules.AmountConditionDef{Max: &max}},
		},
	}

	compiled, invalid := rules.Compile(defs, testAccountCodes)
	require.Empty(t, invalid)
	require.Len(t, compiled, 1)
	require.NotNil(t, compiled[0].Conditions.Amount)
	assert.True(t, compiled[0].Conditions.Amount.Matches(decimal.RequireFromString("-25")))
	assert.False(t, compiled[0].Conditions.Amount.Matches(decimal.RequireFromString("25")))
}

func TestCompile_PatternIsCaseInsensitive(t *testing.T) {
	defs := []rules.RuleDefinition{
		{
			Name:       "pattern-rule",
			Accounts:   rules.AccountPairDef{Debit: "6000", Credit: "1100"},
			Conditions: rules.ConditionsDefinition{Description: &rules.TextConditionDef{Pattern: "^atm withdrawal"}},
		},
	}

	compiled, invalid := rules.Compile(defs, testAccountCodes)
	require.Empty(t, invalid)
	require.Len(t, compiled, 1)
	assert.Equal(t, domain.MatchPattern, compiled[0].Conditions.Description.Kind)
	assert.True(t, compiled[0].Conditions.Description.Matches("ATM Withdrawal #42"))
}
