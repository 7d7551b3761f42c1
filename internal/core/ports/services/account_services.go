package services

import (
	"context"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/dto"
)

// AccountSvcFacade exposes account master data operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
