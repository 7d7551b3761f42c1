package services

// ServiceContainer aggregates every service facade for handler registration.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Transaction    TransactionSvcFacade
	Classification ClassificationSvcFacade
	Posting        PostingSvcFacade
	Ledger         LedgerSvcFacade
	Rule           RuleSvcFacade
}
