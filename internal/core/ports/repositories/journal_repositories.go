package repositories

import (
	"context"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// JournalRepository defines persistence operations for immutable journal
// entries. Entries are append-only: there is deliberately no update or delete.
type JournalRepository interface {
	// CreateEntry allocates the next entry number and inserts the entry and
	// its lines as one atomic unit. When classificationID is non-nil, the
	// classification and its source transaction move to POSTED in the same
	// database transaction, guarded on the classification still being PENDING
	// (apperrors.ErrInvalidState otherwise). The returned entry carries the
	// allocated number. Transient sequence-allocation conflicts are retried
	// with bounded attempts inside this call.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, classificationID *string) (*domain.JournalEntry, error)

	// FindEntryByID retrieves an entry with its lines ordered by line number.
	// Returns apperrors.ErrNotFound if it does not exist.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindReversalOf returns the entry that reverses the given entry, or
	// apperrors.ErrNotFound when it has not been reversed.
	FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}
