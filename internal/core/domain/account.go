package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// NormalSide is the side on which an account type conventionally carries its balance.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// normalSides maps each account type to its normal balance side.
// Asset/Expense balances grow on the debit side; Liability/Equity/Income on the credit side.
var normalSides = map[AccountType]NormalSide{
	Asset:     DebitNormal,
	Expense:   DebitNormal,
	Liability: CreditNormal,
	Equity:    CreditNormal,
	Income:    CreditNormal,
}

// NormalSideOf returns the normal balance side for the given account type.
// The second return value is false for unknown account types.
func NormalSideOf(t AccountType) (NormalSide, bool) {
	side, ok := normalSides[t]
	return side, ok
}

// Account represents an entry in the chart of accounts.
// Master data is owned by an external accounts-management component; this core
// reads it to resolve rule targets and validate postings.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (e.g., UUID)
	Code            string      `json:"code"`            // Unique account code (e.g., "6100")
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (Self-referencing)
	IsActive        bool        `json:"isActive"`        // Inactive accounts cannot be posted to
	AuditFields
}
