package services

import (
	portsrepo "github.com/ledgerkit/ledgerkit/internal/core/ports/repositories"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/rules"
)

// NewServiceContainer wires every service against the given repositories and
// rule set.
func NewServiceContainer(
	repos *portsrepo.RepositoryContainer,
	ruleSet *rules.RuleSet,
	rulesPath string,
	fallback FallbackClassification,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:        NewAccountService(repos.Account),
		Transaction:    NewTransactionService(repos.Transaction),
		Classification: NewClassificationService(ruleSet, fallback, repos.Account, repos.Transaction, repos.Classification),
		Posting:        NewPostingService(repos.Account, repos.Transaction, repos.Classification, repos.Journal),
		Ledger:         NewLedgerService(repos.Reporting),
		Rule:           NewRuleService(ruleSet, rulesPath, repos.Account),
	}
}
