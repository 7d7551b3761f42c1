package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	portsrepo "github.com/ledgerkit/ledgerkit/internal/core/ports/repositories"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/dto"
	"github.com/ledgerkit/ledgerkit/internal/middleware"
)

// transactionService is the thin adapter that accepts deduplicated
// transactions from the ingestion layer.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepository) portssvc.TransactionSvcFacade {
	return &transactionService{transactionRepo: transactionRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// ImportTransaction persists an incoming transaction in pending status.
// When the ingestion layer did not supply a dedup hash, one is derived from
// date, amount and description. Implements portssvc.TransactionSvcFacade.
func (s *transactionService) ImportTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash := req.Hash
	if hash == "" {
		sum := sha256.Sum256(fmt.Appendf(nil, "%s-%s-%s", req.Date.Format("2006-01-02"), req.Amount.String(), req.Description))
		hash = hex.EncodeToString(sum[:])
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Hash:          hash,
		Date:          req.Date,
		Amount:        req.Amount,
		Description:   req.Description,
		Counterparty:  req.Counterparty,
		Reference:     req.Reference,
		Source:        req.Source,
		Status:        domain.TransactionPending,
		RawData:       req.RawData,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		// ErrDuplicate propagates: the hash already exists and the ingestion
		// layer treats the import as a no-op.
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction imported", slog.String("transaction_id", txn.TransactionID), slog.String("source", txn.Source))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction by its ID. Implements
// portssvc.TransactionSvcFacade.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}
