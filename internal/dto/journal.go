package dto

import (
	"time"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// JournalLineResponse is the API representation of one journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	LineNumber   int             `json:"lineNumber"`
}

// JournalEntryResponse is the API representation of a journal entry. The entry
// number is rendered in its display form (e.g. "JE-000042").
type JournalEntryResponse struct {
	EntryID             string                `json:"entryID"`
	EntryNumber         string                `json:"entryNumber"`
	Date                time.Time             `json:"date"`
	Description         string                `json:"description"`
	SourceTransactionID *string               `json:"sourceTransactionID,omitempty"`
	ReversalOf          *string               `json:"reversalOf,omitempty"`
	Lines               []JournalLineResponse `json:"lines"`
	CreatedAt           time.Time             `json:"createdAt"`
}

// ToJournalEntryResponse converts a domain JournalEntry to its API form.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:       line.LineID,
			AccountID:    line.AccountID,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
			Description:  line.Description,
			LineNumber:   line.LineNumber,
		}
	}
	return JournalEntryResponse{
		EntryID:             e.EntryID,
		EntryNumber:         accounting.FormatEntryNumber(e.EntryNumber),
		Date:                e.EntryDate,
		Description:         e.Description,
		SourceTransactionID: e.SourceTransactionID,
		ReversalOf:          e.ReversalOf,
		Lines:               lines,
		CreatedAt:           e.CreatedAt,
	}
}
