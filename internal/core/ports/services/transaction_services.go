package services

import (
	"context"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/dto"
)

// TransactionSvcFacade exposes the thin ingestion adapter for deduplicated
// transactions.
type TransactionSvcFacade interface {
	ImportTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}
