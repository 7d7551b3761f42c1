package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkit/ledgerkit/internal/apperrors"
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	portsrepo "github.com/ledgerkit/ledgerkit/internal/core/ports/repositories"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/dto"
	"github.com/ledgerkit/ledgerkit/internal/middleware"
	"github.com/ledgerkit/ledgerkit/internal/rules"
)

var (
	ErrSameAccountPair = errors.New("debit and credit accounts must differ")
	ErrAccountInactive = errors.New("account is inactive")
)

// classificationService matches transactions against the current rule
// snapshot and persists the resulting decisions.
type classificationService struct {
	ruleSet            *rules.RuleSet
	fallback           FallbackClassification
	accountRepo        portsrepo.AccountRepository
	transactionRepo    portsrepo.TransactionRepository
	classificationRepo portsrepo.ClassificationRepository
}

// NewClassificationService creates a new ClassificationService.
func NewClassificationService(
	ruleSet *rules.RuleSet,
	fallback FallbackClassification,
	accountRepo portsrepo.AccountRepository,
	transactionRepo portsrepo.TransactionRepository,
	classificationRepo portsrepo.ClassificationRepository,
) portssvc.ClassificationSvcFacade {
	return &classificationService{
		ruleSet:            ruleSet,
		fallback:           fallback,
		accountRepo:        accountRepo,
		transactionRepo:    transactionRepo,
		classificationRepo: classificationRepo,
	}
}

var _ portssvc.ClassificationSvcFacade = (*classificationService)(nil)

// Classify matches the transaction against the current rule snapshot and
// persists a pending classification. Implements portssvc.ClassificationSvcFacade.
func (s *classificationService) Classify(ctx context.Context, transactionID string, actor string) (*domain.TransactionClassification, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	// Pending transactions are classifiable; errored ones may be retried after
	// the underlying cause (e.g. a missing account) is fixed.
	switch txn.Status {
	case domain.TransactionPending, domain.TransactionError:
	default:
		return nil, fmt.Errorf("%w: transaction %s status is %s", apperrors.ErrInvalidState, transactionID, txn.Status)
	}

	match := MatchTransaction(*txn, s.ruleSet.Snapshot(), s.fallback)

	debitAccount, err := s.resolveActiveAccount(ctx, match.DebitAccountCode)
	if err == nil {
		var creditAccount *domain.Account
		creditAccount, err = s.resolveActiveAccount(ctx, match.CreditAccountCode)
		if err == nil {
			return s.persistClassification(ctx, txn, match, debitAccount, creditAccount, actor)
		}
	}

	// Account resolution failed: mark the transaction ERROR so it can be
	// retried once the chart of accounts is fixed. No classification row is
	// written; its account columns require resolvable accounts. The cause
	// travels in the returned error and the log.
	logger.Warn("Classification failed on account resolution",
		slog.String("transaction_id", transactionID),
		slog.String("error", err.Error()))
	now := time.Now().UTC()
	if updErr := s.transactionRepo.UpdateTransactionStatus(ctx, transactionID, domain.TransactionError, actor, now); updErr != nil {
		logger.Error("Failed to mark transaction as errored", slog.String("transaction_id", transactionID), slog.String("error", updErr.Error()))
	}
	return nil, fmt.Errorf("failed to classify transaction %s: %w", transactionID, err)
}

// resolveActiveAccount resolves an account code to an existing active account.
func (s *classificationService) resolveActiveAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("account code %q does not resolve: %w", code, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account code %q", ErrAccountInactive, code)
	}
	return account, nil
}

func (s *classificationService) persistClassification(ctx context.Context, txn *domain.Transaction, match RuleMatch, debitAccount, creditAccount *domain.Account, actor string) (*domain.TransactionClassification, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	ruleName := ""
	if match.Rule != nil {
		ruleName = match.Rule.Name
	}

	classification := domain.TransactionClassification{
		ClassificationID: uuid.NewString(),
		TransactionID:    txn.TransactionID,
		DebitAccountID:   debitAccount.AccountID,
		CreditAccountID:  creditAccount.AccountID,
		Confidence:       match.Confidence,
		RuleName:         ruleName,
		Rationale:        match.Rationale,
		Status:           domain.ClassificationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.classificationRepo.SaveClassification(ctx, classification, domain.TransactionClassified); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("transaction %s already has an active classification: %w", txn.TransactionID, err)
		}
		logger.Error("Failed to save classification", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save classification: %w", err)
	}

	logger.Info("Transaction classified",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("classification_id", classification.ClassificationID),
		slog.String("rule_name", ruleName),
		slog.Float64("confidence", classification.Confidence),
	)
	return &classification, nil
}

// ClassifyBatch classifies a sequence of transactions. Each item's failure is
// isolated and reported per item. Implements portssvc.ClassificationSvcFacade.
func (s *classificationService) ClassifyBatch(ctx context.Context, transactionIDs []string, actor string) []dto.BatchClassificationResult {
	results := make([]dto.BatchClassificationResult, len(transactionIDs))
	for i, id := range transactionIDs {
		result := dto.BatchClassificationResult{TransactionID: id}
		classification, err := s.Classify(ctx, id, actor)
		if err != nil {
			result.Error = err.Error()
		} else {
			resp := dto.ToClassificationResponse(classification)
			result.Classification = &resp
		}
		results[i] = result
	}
	return results
}

// Override replaces a pending classification with an operator-supplied account
// pair. Implements portssvc.ClassificationSvcFacade.
func (s *classificationService) Override(ctx context.Context, classificationID string, req dto.OverrideClassificationRequest, actor string) (*domain.TransactionClassification, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	classification, err := s.classificationRepo.FindClassificationByID(ctx, classificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find classification %s: %w", classificationID, err)
	}
	if classification.Status != domain.ClassificationPending {
		// Posted decisions are immutable; corrections require a reversal at
		// the posting layer.
		return nil, fmt.Errorf("%w: classification %s status is %s", apperrors.ErrInvalidState, classificationID, classification.Status)
	}

	if req.DebitAccountID == req.CreditAccountID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccountPair)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.DebitAccountID, req.CreditAccountID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for override: %w", err)
	}
	for _, accountID := range []string{req.DebitAccountID, req.CreditAccountID} {
		account, found := accounts[accountID]
		if !found {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, accountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s (%s)", ErrAccountInactive, accountID, account.Code)
		}
	}

	now := time.Now().UTC()
	classification.DebitAccountID = req.DebitAccountID
	classification.CreditAccountID = req.CreditAccountID
	classification.Confidence = 1.0
	classification.RuleName = ""
	classification.Rationale = "manual override"
	classification.LastUpdatedAt = now
	classification.LastUpdatedBy = actor

	if err := s.classificationRepo.OverridePendingClassification(ctx, *classification); err != nil {
		// ErrInvalidState here means the classification was posted between the
		// read above and the guarded update.
		return nil, fmt.Errorf("failed to override classification %s: %w", classificationID, err)
	}

	logger.Info("Classification overridden",
		slog.String("classification_id", classificationID),
		slog.String("debit_account_id", req.DebitAccountID),
		slog.String("credit_account_id", req.CreditAccountID),
	)
	return classification, nil
}
