package repositories

import (
	"context"
	"time"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// ReportingRepository defines read-only aggregation queries over the ledger.
type ReportingRepository interface {
	// GetTrialBalanceRows aggregates debit and credit totals per account over
	// all journal lines whose entry is dated on or before asOf. The scan must
	// execute against a single consistent snapshot of the ledger and never
	// mutate it.
	GetTrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
