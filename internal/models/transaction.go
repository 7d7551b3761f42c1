package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors domain.TransactionStatus for DB storage.
type TransactionStatus string

// Transaction is the database representation of an ingested transaction.
type Transaction struct {
	TransactionID string
	Hash          string
	Date          time.Time
	Amount        decimal.Decimal
	Description   string
	Counterparty  *string
	Reference     *string
	Source        string
	Status        TransactionStatus
	RawData       []byte // opaque JSON payload, NULL when absent
	AuditFields
}
