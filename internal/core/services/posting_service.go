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
	"github.com/ledgerkit/ledgerkit/internal/middleware"
	"github.com/ledgerkit/ledgerkit/internal/utils/accounting"
)

// postingService converts accepted classifications into immutable, balanced
// journal entries.
type postingService struct {
	accountRepo        portsrepo.AccountRepository
	transactionRepo    portsrepo.TransactionRepository
	classificationRepo portsrepo.ClassificationRepository
	journalRepo        portsrepo.JournalRepository
}

// NewPostingService creates a new PostingService.
func NewPostingService(
	accountRepo portsrepo.AccountRepository,
	transactionRepo portsrepo.TransactionRepository,
	classificationRepo portsrepo.ClassificationRepository,
	journalRepo portsrepo.JournalRepository,
) portssvc.PostingSvcFacade {
	return &postingService{
		accountRepo:        accountRepo,
		transactionRepo:    transactionRepo,
		classificationRepo: classificationRepo,
		journalRepo:        journalRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// Post converts a pending classification into a two-line balanced journal
// entry. Implements portssvc.PostingSvcFacade.
func (s *postingService) Post(ctx context.Context, classificationID string, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	classification, err := s.classificationRepo.FindClassificationByID(ctx, classificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find classification %s: %w", classificationID, err)
	}
	if classification.Status != domain.ClassificationPending {
		return nil, fmt.Errorf("%w: classification %s status is %s", apperrors.ErrInvalidState, classificationID, classification.Status)
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, classification.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find source transaction %s: %w", classification.TransactionID, err)
	}

	accountIDs := []string{classification.DebitAccountID, classification.CreditAccountID}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}
	for _, accountID := range accountIDs {
		account, found := accounts[accountID]
		if !found {
			return nil, &apperrors.PostingError{ClassificationID: classificationID, AccountID: accountID, Reason: "account not found"}
		}
		if !account.IsActive {
			return nil, &apperrors.PostingError{ClassificationID: classificationID, AccountID: accountID, Reason: "account is inactive"}
		}
	}

	amount := txn.Amount.Abs()
	if amount.IsZero() {
		return nil, &apperrors.PostingError{ClassificationID: classificationID, Reason: "transaction amount is zero"}
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:             entryID,
		EntryDate:           txn.Date,
		Description:         txn.Description,
		SourceTransactionID: &txn.TransactionID,
		CreatedAt:           now,
		CreatedBy:           actor,
		Lines: []domain.JournalLine{
			{
				LineID:      uuid.NewString(),
				EntryID:     entryID,
				AccountID:   classification.DebitAccountID,
				DebitAmount: amount,
				Description: txn.Description,
				LineNumber:  1,
			},
			{
				LineID:       uuid.NewString(),
				EntryID:      entryID,
				AccountID:    classification.CreditAccountID,
				CreditAmount: amount,
				Description:  txn.Description,
				LineNumber:   2,
			},
		},
	}

	// The balance invariant is checked synchronously before any commit; a
	// failure here is a defect in entry construction, never user input.
	if err := accounting.ValidateEntryBalance(entry.Lines); err != nil {
		logger.Error("Constructed journal entry does not balance", slog.String("classification_id", classificationID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConsistency, err)
	}

	created, err := s.journalRepo.CreateEntry(ctx, entry, &classificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			// Lost the race against a concurrent post of the same
			// classification; no second entry was created.
			return nil, fmt.Errorf("classification %s was posted concurrently: %w", classificationID, err)
		}
		logger.Error("Failed to create journal entry", slog.String("classification_id", classificationID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	logger.Info("Classification posted",
		slog.String("classification_id", classificationID),
		slog.String("entry_id", created.EntryID),
		slog.Int64("entry_number", created.EntryNumber),
	)
	return created, nil
}

// Reverse creates a new entry negating the given one. Implements
// portssvc.PostingSvcFacade.
func (s *postingService) Reverse(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrInvalidState, entryID)
	}

	if existing, err := s.journalRepo.FindReversalOf(ctx, entryID); err == nil {
		return nil, fmt.Errorf("%w: entry %s was already reversed by %s", apperrors.ErrInvalidState, entryID, existing.EntryID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing reversal of %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	lines := make([]domain.JournalLine, len(original.Lines))
	for i, origLine := range original.Lines {
		// Swap the sides, keep account, amount and position.
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    origLine.AccountID,
			DebitAmount:  origLine.CreditAmount,
			CreditAmount: origLine.DebitAmount,
			Description:  origLine.Description,
			LineNumber:   origLine.LineNumber,
		}
	}

	reversal := domain.JournalEntry{
		EntryID:     reversalID,
		EntryDate:   now, // dated at the time of reversal, not the original date
		Description: fmt.Sprintf("Reversal of %s: %s", accounting.FormatEntryNumber(original.EntryNumber), original.Description),
		ReversalOf:  &original.EntryID,
		CreatedAt:   now,
		CreatedBy:   actor,
		Lines:       lines,
	}

	if err := accounting.ValidateEntryBalance(reversal.Lines); err != nil {
		logger.Error("Constructed reversal entry does not balance", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConsistency, err)
	}

	created, err := s.journalRepo.CreateEntry(ctx, reversal, nil)
	if err != nil {
		logger.Error("Failed to create reversal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create reversal entry: %w", err)
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", created.EntryID),
		slog.Int64("entry_number", created.EntryNumber),
	)
	return created, nil
}

// GetEntry retrieves an entry with its lines. Implements portssvc.PostingSvcFacade.
func (s *postingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return entry, nil
}
