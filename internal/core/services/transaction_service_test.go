package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerkit/ledgerkit/internal/apperrors"
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/core/services"
	"github.com/ledgerkit/ledgerkit/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo)
}

func (suite *TransactionServiceTestSuite) TestImportTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Hash:        "upstream-hash-1",
		Date:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("-12.95"),
		Description: "coffee beans",
		Source:      "bank-feed",
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.ImportTransaction(ctx, req, "importer")

	suite.Require().NoError(err)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal("upstream-hash-1", txn.Hash)
	suite.Equal(domain.TransactionPending, txn.Status)
	suite.Equal("importer", txn.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestImportTransaction_DerivesHashWhenAbsent() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("-12.95"),
		Description: "coffee beans",
		Source:      "bank-feed",
	}

	var firstHash string
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			firstHash = args.Get(1).(domain.Transaction).Hash
		}).
		Return(nil).Twice()

	txn1, err := suite.service.ImportTransaction(ctx, req, "importer")
	suite.Require().NoError(err)
	txn2, err := suite.service.ImportTransaction(ctx, req, "importer")
	suite.Require().NoError(err)

	// Derived hash is deterministic over date, amount and description.
	suite.NotEmpty(firstHash)
	suite.Equal(txn1.Hash, txn2.Hash)
	suite.Len(txn1.Hash, 64) // hex sha256
}

func (suite *TransactionServiceTestSuite) TestImportTransaction_DuplicatePropagates() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Hash:        "seen-before",
		Date:        time.Now(),
		Amount:      decimal.RequireFromString("1"),
		Description: "dup",
		Source:      "bank-feed",
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(apperrors.ErrDuplicate).Once()

	txn, err := suite.service.ImportTransaction(ctx, req, "importer")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindTransactionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransactionByID(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
