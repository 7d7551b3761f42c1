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
	"github.com/ledgerkit/ledgerkit/internal/models"
	"github.com/ledgerkit/ledgerkit/internal/utils/mapping"
)

type PgxClassificationRepository struct {
	pool *pgxpool.Pool
}

// newPgxClassificationRepository creates a new repository for transaction
// classifications.
func newPgxClassificationRepository(pool *pgxpool.Pool) portsrepo.ClassificationRepository {
	return &PgxClassificationRepository{pool: pool}
}

// Ensure PgxClassificationRepository implements portsrepo.ClassificationRepository
var _ portsrepo.ClassificationRepository = (*PgxClassificationRepository)(nil)

const classificationColumns = `classification_id, transaction_id, debit_account_id, credit_account_id, confidence, rule_name, rationale, status, created_at, created_by, last_updated_at, last_updated_by`

func scanClassification(row pgx.Row) (models.Classification, error) {
	var m models.Classification
	err := row.Scan(
		&m.ClassificationID,
		&m.TransactionID,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.Confidence,
		&m.RuleName,
		&m.Rationale,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveClassification inserts a classification and moves its transaction to
// txnStatus in one database transaction, so a transaction is never marked
// CLASSIFIED without a classification row to back it. The partial unique
// index on transaction_id (non-error rows) turns a concurrent double-classify
// into ErrDuplicate.
func (r *PgxClassificationRepository) SaveClassification(ctx context.Context, classification domain.TransactionClassification, txnStatus domain.TransactionStatus) error {
	m := mapping.ToModelClassification(classification)

	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		insertQuery := `
			INSERT INTO classifications (` + classificationColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		_, err := tx.Exec(ctx, insertQuery,
			m.ClassificationID,
			m.TransactionID,
			m.DebitAccountID,
			m.CreditAccountID,
			m.Confidence,
			m.RuleName,
			m.Rationale,
			m.Status,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: transaction %s already has an active classification", apperrors.ErrDuplicate, m.TransactionID)
			}
			return fmt.Errorf("failed to save classification %s: %w", m.ClassificationID, err)
		}

		updateQuery := `
			UPDATE transactions
			SET status = $2, last_updated_at = $3, last_updated_by = $4
			WHERE transaction_id = $1;
		`
		tag, err := tx.Exec(ctx, updateQuery, m.TransactionID, string(txnStatus), m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to update transaction %s status: %w", m.TransactionID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
		}
		return nil
	})
}

// FindClassificationByID retrieves a classification by its ID.
func (r *PgxClassificationRepository) FindClassificationByID(ctx context.Context, classificationID string) (*domain.TransactionClassification, error) {
	query := `
		SELECT ` + classificationColumns + `
		FROM classifications
		WHERE classification_id = $1;
	`
	m, err := scanClassification(r.pool.QueryRow(ctx, query, classificationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find classification by ID %s: %w", classificationID, err)
	}
	c := mapping.ToDomainClassification(m)
	return &c, nil
}

// FindActiveClassificationByTransactionID retrieves the single non-error
// classification for a transaction.
func (r *PgxClassificationRepository) FindActiveClassificationByTransactionID(ctx context.Context, transactionID string) (*domain.TransactionClassification, error) {
	query := `
		SELECT ` + classificationColumns + `
		FROM classifications
		WHERE transaction_id = $1 AND status <> 'ERROR';
	`
	m, err := scanClassification(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active classification for transaction %s: %w", transactionID, err)
	}
	c := mapping.ToDomainClassification(m)
	return &c, nil
}

// OverridePendingClassification replaces the decision fields of a
// classification, guarded on status PENDING so posted decisions stay frozen.
func (r *PgxClassificationRepository) OverridePendingClassification(ctx context.Context, classification domain.TransactionClassification) error {
	m := mapping.ToModelClassification(classification)

	query := `
		UPDATE classifications
		SET debit_account_id = $2,
		    credit_account_id = $3,
		    confidence = $4,
		    rule_name = $5,
		    rationale = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE classification_id = $1 AND status = 'PENDING';
	`
	tag, err := r.pool.Exec(ctx, query,
		m.ClassificationID,
		m.DebitAccountID,
		m.CreditAccountID,
		m.Confidence,
		m.RuleName,
		m.Rationale,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to override classification %s: %w", m.ClassificationID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish missing from no-longer-pending for a precise error.
		if _, err := r.FindClassificationByID(ctx, m.ClassificationID); err != nil {
			return err
		}
		return fmt.Errorf("%w: classification %s is not pending", apperrors.ErrInvalidState, m.ClassificationID)
	}
	return nil
}
