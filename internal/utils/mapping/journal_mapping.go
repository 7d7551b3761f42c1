package mapping

import (
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to its model form.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:             d.EntryID,
		EntryNumber:         d.EntryNumber,
		EntryDate:           d.EntryDate,
		Description:         d.Description,
		SourceTransactionID: d.SourceTransactionID,
		ReversalOf:          d.ReversalOf,
		CreatedAt:           d.CreatedAt,
		CreatedBy:           d.CreatedBy,
	}
}

// ToDomainJournalEntry converts a model JournalEntry header to its domain
// form, without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:             m.EntryID,
		EntryNumber:         m.EntryNumber,
		EntryDate:           m.EntryDate,
		Description:         m.Description,
		SourceTransactionID: m.SourceTransactionID,
		ReversalOf:          m.ReversalOf,
		CreatedAt:           m.CreatedAt,
		CreatedBy:           m.CreatedBy,
	}
}

// ToModelJournalLine converts a domain JournalLine to its model form.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		Description:  d.Description,
		LineNumber:   d.LineNumber,
	}
}

// ToDomainJournalLine converts a model JournalLine to its domain form.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
		LineNumber:   m.LineNumber,
	}
}
