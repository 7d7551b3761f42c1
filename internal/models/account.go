package models

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account is the database representation of an account.
type Account struct {
	AccountID       string
	Code            string
	Name            string
	AccountType     AccountType
	ParentAccountID *string // NULL when the account is a root of the tree
	IsActive        bool
	AuditFields
}
