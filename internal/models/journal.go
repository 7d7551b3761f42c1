package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database representation of a journal entry header.
// The table is append-only; rows are never updated or deleted.
type JournalEntry struct {
	EntryID             string
	EntryNumber         int64
	EntryDate           time.Time
	Description         string
	SourceTransactionID *string
	ReversalOf          *string
	CreatedAt           time.Time
	CreatedBy           string
}

// JournalLine is the database representation of one journal line.
type JournalLine struct {
	LineID       string
	EntryID      string
	AccountID    string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
	Description  string
	LineNumber   int
}
