package dto

import (
	"time"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// OverrideClassificationRequest replaces a pending classification's account
// pair with an operator-supplied one.
type OverrideClassificationRequest struct {
	DebitAccountID  string `json:"debitAccountID" binding:"required"`
	CreditAccountID string `json:"creditAccountID" binding:"required"`
}

// BatchClassifyRequest asks for classification of a batch of transactions.
type BatchClassifyRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1"`
}

// ClassificationResponse is the API representation of a classification.
type ClassificationResponse struct {
	ClassificationID string                      `json:"classificationID"`
	TransactionID    string                      `json:"transactionID"`
	DebitAccountID   string                      `json:"debitAccountID"`
	CreditAccountID  string                      `json:"creditAccountID"`
	Confidence       float64                     `json:"confidence"`
	RuleName         string                      `json:"ruleName,omitempty"`
	Rationale        string                      `json:"rationale"`
	Status           domain.ClassificationStatus `json:"status"`
	CreatedAt        time.Time                   `json:"createdAt"`
}

// ToClassificationResponse converts a domain classification to its API form.
func ToClassificationResponse(c *domain.TransactionClassification) ClassificationResponse {
	return ClassificationResponse{
		ClassificationID: c.ClassificationID,
		TransactionID:    c.TransactionID,
		DebitAccountID:   c.DebitAccountID,
		CreditAccountID:  c.CreditAccountID,
		Confidence:       c.Confidence,
		RuleName:         c.RuleName,
		Rationale:        c.Rationale,
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
	}
}

// BatchClassificationResult reports the outcome for one transaction in a
// batch. A failed item carries its error message; failures never abort the
// rest of the batch.
type BatchClassificationResult struct {
	TransactionID  string                  `json:"transactionID"`
	Classification *ClassificationResponse `json:"classification,omitempty"`
	Error          string                  `json:"error,omitempty"`
}
