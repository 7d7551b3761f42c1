package models

// ClassificationStatus mirrors domain.ClassificationStatus for DB storage.
type ClassificationStatus string

// Classification is the database representation of a transaction
// classification.
type Classification struct {
	ClassificationID string
	TransactionID    string
	DebitAccountID   string
	CreditAccountID  string
	Confidence       float64
	RuleName         *string // NULL for fallback and manual overrides
	Rationale        string
	Status           ClassificationStatus
	AuditFields
}
