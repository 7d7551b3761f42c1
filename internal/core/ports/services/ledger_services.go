package services

import (
	"context"
	"time"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
)

// LedgerSvcFacade exposes read-only aggregation over posted entries.
type LedgerSvcFacade interface {
	// TrialBalance computes per-account balances on each account's normal side
	// as of the given date. When the grand totals do not balance the report is
	// still returned together with an error wrapping apperrors.ErrConsistency,
	// so callers can alert on it.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)
}
