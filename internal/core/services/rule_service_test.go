package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/core/services"
	"github.com/ledgerkit/ledgerkit/internal/rules"
	"github.com/stretchr/testify/suite"
)

type RuleServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	ruleSet         *rules.RuleSet
	rulesPath       string
	service         portssvc.RuleSvcFacade
}

func (suite *RuleServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.ruleSet = rules.NewRuleSet()
	suite.rulesPath = filepath.Join(suite.T().TempDir(), "rules.yaml")
	suite.service = services.NewRuleService(suite.ruleSet, suite.rulesPath, suite.mockAccountRepo)
}

func (suite *RuleServiceTestSuite) writeRules(content string) {
	suite.Require().NoError(os.WriteFile(suite.rulesPath, []byte(content), 0o600))
}

func (suite *RuleServiceTestSuite) TestReloadRules_LoadsValidSkipsInvalid() {
	ctx := context.Background()
	suite.writeRules(`
rules:
  - name: bank-fee
    priority: 100
    conditions:
      description: fee
    accounts:
      debit: "6000"
      credit: "1100"
    confidence: 0.95
  - name: dangling
    accounts:
      debit: "0000"
      credit: "1100"
    confidence: 0.5
`)
	suite.mockAccountRepo.On("ListActiveAccountCodes", ctx).
		Return(map[string]struct{}{"1100": {}, "6000": {}}, nil).Once()

	result, err := suite.service.ReloadRules(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, result.Loaded)
	suite.Require().Len(result.Skipped, 1)
	suite.Equal("dangling", result.Skipped[0].RuleName)
	suite.Contains(result.Skipped[0].Reason, "does not resolve")

	// The snapshot was swapped in.
	snapshot := suite.ruleSet.Snapshot()
	suite.Require().Len(snapshot, 1)
	suite.Equal("bank-fee", snapshot[0].Name)
}

func (suite *RuleServiceTestSuite) TestReloadRules_MissingFile() {
	ctx := context.Background()

	result, err := suite.service.ReloadRules(ctx)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListActiveAccountCodes")
}

func (suite *RuleServiceTestSuite) TestReloadRules_KeepsOldSnapshotOnParseError() {
	ctx := context.Background()

	// Install a good generation first.
	suite.writeRules(`
rules:
  - name: keeper
    accounts:
      debit: "6000"
      credit: "1100"
    confidence: 0.5
`)
	suite.mockAccountRepo.On("ListActiveAccountCodes", ctx).
		Return(map[string]struct{}{"1100": {}, "6000": {}}, nil).Once()
	_, err := suite.service.ReloadRules(ctx)
	suite.Require().NoError(err)

	// A malformed file fails the reload without touching the active snapshot.
	suite.writeRules("rules:\n  - name: [broken")
	_, err = suite.service.ReloadRules(ctx)
	suite.Require().Error(err)

	snapshot := suite.ruleSet.Snapshot()
	suite.Require().Len(snapshot, 1)
	suite.Equal("keeper", snapshot[0].Name)
}

func (suite *RuleServiceTestSuite) TestListRules_IncludesDisabled() {
	ctx := context.Background()
	suite.writeRules(`
rules:
  - name: active-rule
    accounts:
      debit: "6000"
      credit: "1100"
    confidence: 0.5
  - name: parked-rule
    enabled: false
    accounts:
      debit: "6000"
      credit: "1100"
    confidence: 0.5
`)
	suite.mockAccountRepo.On("ListActiveAccountCodes", ctx).
		Return(map[string]struct{}{"1100": {}, "6000": {}}, nil).Once()
	_, err := suite.service.ReloadRules(ctx)
	suite.Require().NoError(err)

	all := suite.service.ListRules(ctx)
	suite.Require().Len(all, 2)
	suite.Equal("active-rule", all[0].Name)
	suite.False(all[1].Enabled)

	suite.Require().Len(suite.ruleSet.Snapshot(), 1)
}

func TestRuleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RuleServiceTestSuite))
}
