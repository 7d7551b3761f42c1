package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is an immutable, balanced double-entry record in the ledger.
// Entries are never updated or deleted after creation; corrections are made by
// posting a reversal entry that references the original.
type JournalEntry struct {
	EntryID             string        `json:"entryID"`     // Primary Key (e.g., UUID)
	EntryNumber         int64         `json:"entryNumber"` // Strictly increasing, globally unique sequence
	EntryDate           time.Time     `json:"date"`
	Description         string        `json:"description"`
	SourceTransactionID *string       `json:"sourceTransactionID,omitempty"` // FK -> transactions; nil for reversals
	ReversalOf          *string       `json:"reversalOf,omitempty"`          // FK -> journal_entries.entry_id
	Lines               []JournalLine `json:"lines"`
	CreatedAt           time.Time     `json:"createdAt"`
	CreatedBy           string        `json:"createdBy"`
}

// IsReversal reports whether the entry negates a prior entry.
func (e *JournalEntry) IsReversal() bool {
	return e.ReversalOf != nil
}

// JournalLine is one side of a journal entry. Exactly one of DebitAmount and
// CreditAmount is nonzero, and neither is ever negative.
type JournalLine struct {
	LineID       string          `json:"lineID"`  // Primary Key (e.g., UUID)
	EntryID      string          `json:"entryID"` // FK -> journal_entries.entry_id
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	LineNumber   int             `json:"lineNumber"` // 1-based position within the entry
}
