package dto

import (
	"encoding/json"
	"time"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload to register a deduplicated
// transaction from the ingestion layer. Hash is the upstream dedup key; when
// absent it is derived from date, amount and description.
type CreateTransactionRequest struct {
	Hash         string          `json:"hash"`
	Date         time.Time       `json:"date" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	Counterparty string          `json:"counterparty"`
	Reference    string          `json:"reference"`
	Source       string          `json:"source" binding:"required"`
	RawData      json.RawMessage `json:"rawData"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	Hash          string                   `json:"hash"`
	Date          time.Time                `json:"date"`
	Amount        decimal.Decimal          `json:"amount"`
	Description   string                   `json:"description"`
	Counterparty  string                   `json:"counterparty,omitempty"`
	Reference     string                   `json:"reference,omitempty"`
	Source        string                   `json:"source"`
	Status        domain.TransactionStatus `json:"status"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// ToTransactionResponse converts a domain Transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Hash:          t.Hash,
		Date:          t.Date,
		Amount:        t.Amount,
		Description:   t.Description,
		Counterparty:  t.Counterparty,
		Reference:     t.Reference,
		Source:        t.Source,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
	}
}
