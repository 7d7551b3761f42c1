package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus tracks a transaction through the classification lifecycle.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "PENDING"
	TransactionClassified TransactionStatus = "CLASSIFIED"
	TransactionPosted     TransactionStatus = "POSTED"
	TransactionError      TransactionStatus = "ERROR"
)

// Transaction represents a single financial transaction received from the
// ingestion layer. The Hash is the dedup key and is assigned upstream.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (e.g., UUID)
	Hash          string            `json:"hash"`          // Unique content hash for deduplication
	Date          time.Time         `json:"date"`          // Date the transaction occurred
	Amount        decimal.Decimal   `json:"amount"`        // Signed amount; negative for outflows
	Description   string            `json:"description"`
	Counterparty  string            `json:"counterparty"` // Nullable
	Reference     string            `json:"reference"`    // Nullable
	Source        string            `json:"source"`       // e.g., "bank_import", "payroll", "manual"
	Status        TransactionStatus `json:"classificationStatus"`
	RawData       json.RawMessage   `json:"rawData,omitempty"` // Opaque upstream payload
	AuditFields
}
