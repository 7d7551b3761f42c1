package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkit/ledgerkit/internal/apperrors"
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	portsrepo "github.com/ledgerkit/ledgerkit/internal/core/ports/repositories"
	"github.com/ledgerkit/ledgerkit/internal/middleware"
	"github.com/ledgerkit/ledgerkit/internal/models"
	"github.com/ledgerkit/ledgerkit/internal/utils/mapping"
)

// maxCreateEntryAttempts bounds retries on serialization conflicts around the
// entry number allocation.
const maxCreateEntryAttempts = 3

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{pool: pool}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const journalEntryColumns = `entry_id, entry_number, entry_date, description, source_transaction_id, reversal_of, created_at, created_by`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.SourceTransactionID,
		&m.ReversalOf,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// CreateEntry allocates the next entry number and inserts the entry header and
// lines atomically. When classificationID is set, the classification and its
// transaction flip to POSTED in the same database transaction, guarded on the
// classification still being PENDING. The single-row update on
// journal_sequence serializes concurrent posters; conflicting attempts are
// retried up to maxCreateEntryAttempts times.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, classificationID *string) (*domain.JournalEntry, error) {
	var lastErr error
	for attempt := 1; attempt <= maxCreateEntryAttempts; attempt++ {
		created, err := r.createEntryOnce(ctx, entry, classificationID)
		if err == nil {
			return created, nil
		}
		if !isSerializationFailure(err) {
			return nil, err
		}
		lastErr = err
		middleware.GetLoggerFromCtx(ctx).Warn("retrying journal entry creation after serialization conflict",
			"entry_id", entry.EntryID, "attempt", attempt)
	}
	return nil, fmt.Errorf("journal entry creation exhausted %d attempts: %w", maxCreateEntryAttempts, lastErr)
}

func (r *PgxJournalRepository) createEntryOnce(ctx context.Context, entry domain.JournalEntry, classificationID *string) (*domain.JournalEntry, error) {
	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		// The row lock taken here is the serialization point for entry numbering:
		// concurrent posters queue on it and each sees a distinct number.
		var entryNumber int64
		err := tx.QueryRow(ctx, `
			UPDATE journal_sequence
			SET last_number = last_number + 1
			WHERE id = 1
			RETURNING last_number;
		`).Scan(&entryNumber)
		if err != nil {
			return fmt.Errorf("failed to allocate entry number: %w", err)
		}
		entry.EntryNumber = entryNumber

		m := mapping.ToModelJournalEntry(entry)
		_, err = tx.Exec(ctx, `
			INSERT INTO journal_entries (`+journalEntryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`,
			m.EntryID,
			m.EntryNumber,
			m.EntryDate,
			m.Description,
			m.SourceTransactionID,
			m.ReversalOf,
			m.CreatedAt,
			m.CreatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "journal_entries_reversal_of_key" {
				reversed := ""
				if m.ReversalOf != nil {
					reversed = *m.ReversalOf
				}
				return fmt.Errorf("%w: entry %s has already been reversed", apperrors.ErrInvalidState, reversed)
			}
			return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
		}

		batch := &pgx.Batch{}
		for _, line := range entry.Lines {
			ml := mapping.ToModelJournalLine(line)
			batch.Queue(`
				INSERT INTO journal_lines (line_id, entry_id, account_id, debit_amount, credit_amount, description, line_number)
				VALUES ($1, $2, $3, $4, $5, $6, $7);
			`,
				ml.LineID,
				ml.EntryID,
				ml.AccountID,
				ml.DebitAmount,
				ml.CreditAmount,
				ml.Description,
				ml.LineNumber,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range entry.Lines {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert journal line for entry %s: %w", m.EntryID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close journal line batch: %w", err)
		}

		if classificationID != nil {
			tag, err := tx.Exec(ctx, `
				UPDATE classifications
				SET status = 'POSTED', last_updated_at = $2, last_updated_by = $3
				WHERE classification_id = $1 AND status = 'PENDING';
			`, *classificationID, m.CreatedAt, m.CreatedBy)
			if err != nil {
				return fmt.Errorf("failed to mark classification %s posted: %w", *classificationID, err)
			}
			if tag.RowsAffected() == 0 {
				// A concurrent post won the race; this attempt must not produce a
				// second entry for the same classification.
				return fmt.Errorf("%w: classification %s is not pending", apperrors.ErrInvalidState, *classificationID)
			}

			if m.SourceTransactionID != nil {
				_, err = tx.Exec(ctx, `
					UPDATE transactions
					SET status = 'POSTED', last_updated_at = $2, last_updated_by = $3
					WHERE transaction_id = $1;
				`, *m.SourceTransactionID, m.CreatedAt, m.CreatedBy)
				if err != nil {
					return fmt.Errorf("failed to mark transaction %s posted: %w", *m.SourceTransactionID, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// isSerializationFailure reports whether err is a transient conflict worth
// retrying (serialization_failure or deadlock_detected).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// FindEntryByID retrieves an entry and its lines ordered by line number.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanJournalEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	lines, err := r.findLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxJournalRepository) findLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit_amount, credit_amount, description, line_number
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var ml models.JournalLine
		err := rows.Scan(
			&ml.LineID,
			&ml.EntryID,
			&ml.AccountID,
			&ml.DebitAmount,
			&ml.CreditAmount,
			&ml.Description,
			&ml.LineNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(ml))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal lines: %w", err)
	}
	return lines, nil
}

// FindReversalOf returns the entry that reverses entryID, with its lines.
func (r *PgxJournalRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE reversal_of = $1;
	`
	m, err := scanJournalEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reversal of entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	lines, err := r.findLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}
