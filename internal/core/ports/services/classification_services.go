package services

import (
	"context"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/dto"
)

// ClassificationSvcFacade exposes classification of transactions against the
// current rule snapshot.
type ClassificationSvcFacade interface {
	// Classify matches the transaction against the rule snapshot and persists
	// a pending classification. Every well-formed transaction is classifiable:
	// when no rule matches, the configured fallback pair is used.
	Classify(ctx context.Context, transactionID string, actor string) (*domain.TransactionClassification, error)

	// ClassifyBatch classifies a sequence of transactions. One item's failure
	// is isolated and reported per item, never aborting the batch.
	ClassifyBatch(ctx context.Context, transactionIDs []string, actor string) []dto.BatchClassificationResult

	// Override replaces a pending classification with an operator-supplied
	// account pair at confidence 1.0. Posted classifications are immutable;
	// overriding one returns apperrors.ErrInvalidState.
	Override(ctx context.Context, classificationID string, req dto.OverrideClassificationRequest, actor string) (*domain.TransactionClassification, error)
}
