package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	portsrepo "github.com/ledgerkit/ledgerkit/internal/core/ports/repositories"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/dto"
	"github.com/ledgerkit/ledgerkit/internal/middleware"
	"github.com/ledgerkit/ledgerkit/internal/rules"
)

// ruleService loads the declarative rules file and maintains the active
// snapshot used by the matcher.
type ruleService struct {
	ruleSet     *rules.RuleSet
	rulesPath   string
	accountRepo portsrepo.AccountRepository
}

// NewRuleService creates a new RuleService.
func NewRuleService(ruleSet *rules.RuleSet, rulesPath string, accountRepo portsrepo.AccountRepository) portssvc.RuleSvcFacade {
	return &ruleService{
		ruleSet:     ruleSet,
		rulesPath:   rulesPath,
		accountRepo: accountRepo,
	}
}

var _ portssvc.RuleSvcFacade = (*ruleService)(nil)

// ReloadRules re-reads the rules file, validates every rule against the active
// account codes, and swaps in a new snapshot. Invalid rules are skipped and
// reported; they never block the valid rest. Implements portssvc.RuleSvcFacade.
func (s *ruleService) ReloadRules(ctx context.Context) (*dto.RuleReloadResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	defs, err := rules.ParseRulesFile(s.rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules from %s: %w", s.rulesPath, err)
	}

	knownCodes, err := s.accountRepo.ListActiveAccountCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list account codes for rule validation: %w", err)
	}

	compiled, invalid := rules.Compile(defs, knownCodes)
	s.ruleSet.Replace(compiled)

	result := &dto.RuleReloadResult{Loaded: len(compiled)}
	for _, ruleErr := range invalid {
		logger.Warn("Skipping invalid classification rule",
			slog.String("rule_name", ruleErr.RuleName),
			slog.String("reason", ruleErr.Reason),
		)
		result.Skipped = append(result.Skipped, dto.RuleReloadError{RuleName: ruleErr.RuleName, Reason: ruleErr.Reason})
	}

	logger.Info("Rule set reloaded",
		slog.String("path", s.rulesPath),
		slog.Int("loaded", result.Loaded),
		slog.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// ListRules returns every rule in declaration order, disabled ones included.
// Implements portssvc.RuleSvcFacade.
func (s *ruleService) ListRules(ctx context.Context) []domain.ClassificationRule {
	return s.ruleSet.All()
}
