package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/ledgerkit/internal/apperrors"
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	portsrepo "github.com/ledgerkit/ledgerkit/internal/core/ports/repositories"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/middleware"
)

// ledgerService aggregates posted journal entries into reports. It only ever
// reads the ledger.
type ledgerService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(reportingRepo portsrepo.ReportingRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{reportingRepo: reportingRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// TrialBalance computes per-account balances as of the given date. Reversals
// are included in the scan: since a reversal is never dated before its
// original, the append-only history nets out reversed entries naturally.
// Implements portssvc.LedgerSvcFacade.
func (s *ledgerService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger for trial balance: %w", err)
	}

	accounts := make([]domain.TrialBalanceAccount, 0, len(rows))
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero

	for _, row := range rows {
		totalDebits = totalDebits.Add(row.TotalDebit)
		totalCredits = totalCredits.Add(row.TotalCredit)

		side, ok := domain.NormalSideOf(row.AccountType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown account type %q for account %s", apperrors.ErrInternal, row.AccountType, row.AccountID)
		}

		account := domain.TrialBalanceAccount{
			AccountID:     row.AccountID,
			Code:          row.AccountCode,
			Name:          row.AccountName,
			AccountType:   row.AccountType,
			DebitBalance:  decimal.Zero,
			CreditBalance: decimal.Zero,
		}

		// Balance is stated on the account's normal side; a zero balance stays
		// zero on both sides, never a negative on the wrong one. An abnormal
		// (negative) balance flips to the opposite column at its absolute value.
		var net decimal.Decimal
		if side == domain.DebitNormal {
			net = row.TotalDebit.Sub(row.TotalCredit)
			if net.IsNegative() {
				account.CreditBalance = net.Neg()
			} else {
				account.DebitBalance = net
			}
		} else {
			net = row.TotalCredit.Sub(row.TotalDebit)
			if net.IsNegative() {
				account.DebitBalance = net.Neg()
			} else {
				account.CreditBalance = net
			}
		}

		accounts = append(accounts, account)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Code < accounts[j].Code
	})

	balanced := totalDebits.Equal(totalCredits)
	report := &domain.TrialBalance{
		AsOf:     asOf,
		Accounts: accounts,
		Totals: domain.TrialBalanceTotals{
			TotalDebits:  totalDebits,
			TotalCredits: totalCredits,
			Balanced:     balanced,
		},
	}

	if !balanced {
		// An imbalance always indicates a defect in the posting path. The
		// report is still returned so the caller can inspect it.
		logger.Error("Trial balance does not balance",
			slog.String("total_debits", totalDebits.String()),
			slog.String("total_credits", totalCredits.String()),
			slog.Time("as_of", asOf),
		)
		return report, fmt.Errorf("%w: total debits %s != total credits %s as of %s",
			apperrors.ErrConsistency, totalDebits.String(), totalCredits.String(), asOf.Format("2006-01-02"))
	}

	logger.Debug("Trial balance computed", slog.Int("account_count", len(accounts)), slog.Time("as_of", asOf))
	return report, nil
}
