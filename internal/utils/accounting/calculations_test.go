package accounting_test

import (
	"testing"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(n int, debit, credit string) domain.JournalLine {
	return domain.JournalLine{
		LineNumber:   n,
		DebitAmount:  decimal.RequireFromString(debit),
		CreditAmount: decimal.RequireFromString(credit),
	}
}

func TestValidateEntryBalance_Balanced(t *testing.T) {
	lines := []domain.JournalLine{
		line(1, "42.50", "0"),
		line(2, "0", "42.50"),
	}
	require.NoError(t, accounting.ValidateEntryBalance(lines))
}

func TestValidateEntryBalance_MultiLineBalanced(t *testing.T) {
	lines := []domain.JournalLine{
		line(1, "100", "0"),
		line(2, "0", "60"),
		line(3, "0", "40"),
	}
	require.NoError(t, accounting.ValidateEntryBalance(lines))
}

func TestValidateEntryBalance_SingleLine(t *testing.T) {
	lines := []domain.JournalLine{line(1, "10", "0")}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two lines")
}

func TestValidateEntryBalance_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{
		line(1, "10", "0"),
		line(2, "0", "9.99"),
	}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not balance")
}

func TestValidateEntryBalance_BothSidesSet(t *testing.T) {
	lines := []domain.JournalLine{
		line(1, "10", "10"),
		line(2, "0", "0"),
	}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of debit or credit")
}

func TestValidateEntryBalance_NegativeAmount(t *testing.T) {
	lines := []domain.JournalLine{
		line(1, "-5", "0"),
		line(2, "0", "-5"),
	}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.JournalLine{
		line(1, "12.34", "0"),
		line(2, "0", "10"),
		line(3, "0", "2.34"),
	}
	debits, credits := accounting.EntryTotals(lines)
	assert.True(t, debits.Equal(decimal.RequireFromString("12.34")))
	assert.True(t, credits.Equal(decimal.RequireFromString("12.34")))
}

func TestFormatEntryNumber(t *testing.T) {
	assert.Equal(t, "JE-000001", accounting.FormatEntryNumber(1))
	assert.Equal(t, "JE-000042", accounting.FormatEntryNumber(42))
	assert.Equal(t, "JE-1000000", accounting.FormatEntryNumber(1000000))
}
