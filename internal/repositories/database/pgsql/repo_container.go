package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ledgerkit/ledgerkit/internal/core/ports/repositories"
)

func NewRepositoryContainer(dbPool *pgxpool.Pool) portsrepo.RepositoryContainer {
	return portsrepo.RepositoryContainer{
		Account:        newPgxAccountRepository(dbPool),
		Transaction:    newPgxTransactionRepository(dbPool),
		Classification: newPgxClassificationRepository(dbPool),
		Journal:        newPgxJournalRepository(dbPool),
		Reporting:      newReportingRepository(dbPool),
	}
}
