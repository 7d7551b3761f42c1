package services

import (
	"context"

	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/dto"
)

// RuleSvcFacade exposes rule set listing and reload.
type RuleSvcFacade interface {
	// ReloadRules re-reads the rules file and swaps in a new snapshot.
	// Matchers in flight keep the snapshot they started with.
	ReloadRules(ctx context.Context) (*dto.RuleReloadResult, error)

	// ListRules returns every rule in declaration order, disabled ones included.
	ListRules(ctx context.Context) []domain.ClassificationRule
}
