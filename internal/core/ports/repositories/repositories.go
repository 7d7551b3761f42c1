package repositories

// RepositoryContainer aggregates every repository the services need, so wiring
// in main stays a single struct.
type RepositoryContainer struct {
	Account        AccountRepository
	Transaction    TransactionRepository
	Classification ClassificationRepository
	Journal        JournalRepository
	Reporting      ReportingRepository
}
