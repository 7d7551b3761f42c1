package repositories

import (
	"context"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// ClassificationRepository defines persistence operations for transaction
// classifications.
type ClassificationRepository interface {
	// SaveClassification persists a new classification and moves the owning
	// transaction to txnStatus within the same database transaction. Returns
	// apperrors.ErrDuplicate when an active (non-error) classification already
	// exists for the transaction.
	SaveClassification(ctx context.Context, classification domain.TransactionClassification, txnStatus domain.TransactionStatus) error

	// FindClassificationByID retrieves a classification by its ID.
	// Returns apperrors.ErrNotFound if it does not exist.
	FindClassificationByID(ctx context.Context, classificationID string) (*domain.TransactionClassification, error)

	// FindActiveClassificationByTransactionID retrieves the single non-error
	// classification for a transaction, or apperrors.ErrNotFound.
	FindActiveClassificationByTransactionID(ctx context.Context, transactionID string) (*domain.TransactionClassification, error)

	// OverridePendingClassification replaces the account pair, confidence,
	// rule name and rationale of a classification, guarded on status PENDING.
	// Returns apperrors.ErrInvalidState when the classification is no longer
	// pending, so posted decisions are never mutated.
	OverridePendingClassification(ctx context.Context, classification domain.TransactionClassification) error
}
