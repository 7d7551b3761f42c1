package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is the raw per-account debit/credit aggregate scanned from
// posted journal lines, before normal-side presentation.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// TrialBalanceAccount is one presented line of a trial balance, with the
// account's balance stated on its normal side.
type TrialBalanceAccount struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceTotals summarises the grand totals across all scanned lines.
// Balanced is true iff total debits equal total credits exactly.
type TrialBalanceTotals struct {
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Balanced     bool            `json:"balanced"`
}

// TrialBalance is a point-in-time per-account summary of the ledger.
type TrialBalance struct {
	AsOf     time.Time             `json:"asOf"`
	Accounts []TrialBalanceAccount `json:"accounts"`
	Totals   TrialBalanceTotals    `json:"totals"`
}
