package domain

// ClassificationStatus indicates the state of a transaction classification.
type ClassificationStatus string

const (
	ClassificationPending ClassificationStatus = "PENDING"
	ClassificationPosted  ClassificationStatus = "POSTED"
	ClassificationError   ClassificationStatus = "ERROR"
)

// TransactionClassification records the debit/credit account pair assigned to
// a transaction, how confident the assignment is, and why it was made.
// At most one active classification exists per transaction.
type TransactionClassification struct {
	ClassificationID string               `json:"classificationID"` // Primary Key (e.g., UUID)
	TransactionID    string               `json:"transactionID"`    // FK -> transactions.transaction_id
	DebitAccountID   string               `json:"debitAccountID"`   // FK -> accounts.account_id
	CreditAccountID  string               `json:"creditAccountID"`  // FK -> accounts.account_id; must differ from debit
	Confidence       float64              `json:"confidence"`       // In [0,1]; 1.0 for manual overrides
	RuleName         string               `json:"ruleName"`         // Matched rule name; empty for fallback or override
	Rationale        string               `json:"rationale"`        // Human-readable explanation of the decision
	Status           ClassificationStatus `json:"status"`
	AuditFields
}
