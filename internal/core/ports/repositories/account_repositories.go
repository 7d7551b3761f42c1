package repositories

import (
	"context"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// AccountRepository defines persistence operations for account master data.
type AccountRepository interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate if the
	// account code is already taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves an account by its ID.
	// Returns apperrors.ErrNotFound if it does not exist.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
	// are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByCode retrieves an account by its unique code.
	// Returns apperrors.ErrNotFound if it does not exist.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts returns all accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListActiveAccountCodes returns the set of codes of active accounts,
	// used to validate rule targets at load time.
	ListActiveAccountCodes(ctx context.Context) (map[string]struct{}, error)
}
