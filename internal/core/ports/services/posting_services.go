package services

import (
	"context"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// PostingSvcFacade converts accepted classifications into immutable, balanced
// journal entries.
type PostingSvcFacade interface {
	// Post converts a pending classification into a two-line balanced journal
	// entry with a strictly increasing entry number. At-most-once: a second
	// call for the same classification returns apperrors.ErrInvalidState and
	// creates no second entry.
	Post(ctx context.Context, classificationID string, actor string) (*domain.JournalEntry, error)

	// Reverse creates a new entry negating the given one: debit/credit swapped
	// per line, dated at the time of reversal, description referencing the
	// original entry number. The original entry is never altered.
	Reverse(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}
