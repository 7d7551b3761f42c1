package repositories

import (
	"context"
	"time"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// TransactionRepository defines persistence operations for ingested transactions.
type TransactionRepository interface {
	// SaveTransaction persists a deduplicated transaction. Returns
	// apperrors.ErrDuplicate when a transaction with the same content hash
	// already exists.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// FindTransactionByID retrieves a transaction by its ID.
	// Returns apperrors.ErrNotFound if it does not exist.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByStatus returns up to limit transactions in the given
	// status, oldest first.
	ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, limit int) ([]domain.Transaction, error)

	// UpdateTransactionStatus moves a transaction to the given status.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, updatedAt time.Time) error
}
