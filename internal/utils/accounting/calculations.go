package accounting

import (
	"fmt"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryTotals sums the debit and credit amounts across an entry's lines.
func EntryTotals(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}
	return debits, credits
}

// ValidateEntryBalance checks the structural invariants of a journal entry's
// lines before it is committed: at least two lines, every line carries exactly
// one nonzero, non-negative side, and total debits equal total credits.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines, got %d", len(lines))
	}

	for _, line := range lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("line %d has a negative amount", line.LineNumber)
		}
		debitSet := line.DebitAmount.IsPositive()
		creditSet := line.CreditAmount.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("line %d must have exactly one of debit or credit set", line.LineNumber)
		}
	}

	debits, credits := EntryTotals(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("journal entry does not balance: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}
	return nil
}

// FormatEntryNumber renders a sequential entry number in its display form,
// e.g. 42 -> "JE-000042".
func FormatEntryNumber(n int64) string {
	return fmt.Sprintf("JE-%06d", n)
}
