package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerkit/ledgerkit/internal/apperrors"
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/dto"
	"github.com/ledgerkit/ledgerkit/internal/handlers"
	"github.com/ledgerkit/ledgerkit/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// --- Mock ClassificationService ---
type MockClassificationService struct {
	mock.Mock
}

func (m *MockClassificationService) Classify(ctx context.Context, transactionID string, actor string) (*domain.TransactionClassification, error) {
	args := m.Called(ctx, transactionID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionClassification), args.Error(1)
}

func (m *MockClassificationService) ClassifyBatch(ctx context.Context, transactionIDs []string, actor string) []dto.BatchClassificationResult {
	args := m.Called(ctx, transactionIDs, actor)
	return args.Get(0).([]dto.BatchClassificationResult)
}

func (m *MockClassificationService) Override(ctx context.Context, classificationID string, req dto.OverrideClassificationRequest, actor string) (*domain.TransactionClassification, error) {
	args := m.Called(ctx, classificationID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionClassification), args.Error(1)
}

var _ portssvc.ClassificationSvcFacade = (*MockClassificationService)(nil)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) Post(ctx context.Context, classificationID string, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, classificationID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) Reverse(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

type ClassificationHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockClassificationSvc *MockClassificationService
	mockPostingSvc        *MockPostingService
}

func (suite *ClassificationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockClassificationSvc = new(MockClassificationService)
	suite.mockPostingSvc = new(MockPostingService)

	services := &portssvc.ServiceContainer{
		Classification: suite.mockClassificationSvc,
		Posting:        suite.mockPostingSvc,
	}

	rate, err := limiter.NewRateFromFormatted("1000-M")
	suite.Require().NoError(err)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{}, services, ipLimiter)
}

func (suite *ClassificationHandlerTestSuite) perform(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ClassificationHandlerTestSuite) TestClassifyTransaction_Created() {
	classification := &domain.TransactionClassification{
		ClassificationID: uuid.NewString(),
		TransactionID:    "txn-1",
		DebitAccountID:   "acc-d",
		CreditAccountID:  "acc-c",
		Confidence:       0.9,
		RuleName:         "bank-fee",
		Status:           domain.ClassificationPending,
	}
	suite.mockClassificationSvc.On("Classify", mock.Anything, "txn-1", "ops-user").Return(classification, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/transactions/txn-1/classify", nil, map[string]string{"X-Actor-ID": "ops-user"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ClassificationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("bank-fee", resp.RuleName)
	suite.mockClassificationSvc.AssertExpectations(suite.T())
}

func (suite *ClassificationHandlerTestSuite) TestClassifyTransaction_DefaultActor() {
	suite.mockClassificationSvc.On("Classify", mock.Anything, "txn-1", "system").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.perform(http.MethodPost, "/api/v1/transactions/txn-1/classify", nil, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ClassificationHandlerTestSuite) TestPostClassification_Conflict() {
	suite.mockPostingSvc.On("Post", mock.Anything, "cls-1", "system").
		Return(nil, fmt.Errorf("already posted: %w", apperrors.ErrInvalidState)).Once()

	w := suite.perform(http.MethodPost, "/api/v1/classifications/cls-1/post", nil, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ClassificationHandlerTestSuite) TestPostClassification_PostingErrorIsUnprocessable() {
	suite.mockPostingSvc.On("Post", mock.Anything, "cls-1", "system").
		Return(nil, &apperrors.PostingError{ClassificationID: "cls-1", AccountID: "acc-x", Reason: "account is inactive"}).Once()

	w := suite.perform(http.MethodPost, "/api/v1/classifications/cls-1/post", nil, nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *ClassificationHandlerTestSuite) TestPostClassification_RendersEntryNumber() {
	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: 42,
		EntryDate:   time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Description: "office chair",
		Lines: []domain.JournalLine{
			{AccountID: "acc-d", DebitAmount: decimal.RequireFromString("10"), LineNumber: 1},
			{AccountID: "acc-c", CreditAmount: decimal.RequireFromString("10"), LineNumber: 2},
		},
	}
	suite.mockPostingSvc.On("Post", mock.Anything, "cls-1", "system").Return(entry, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/classifications/cls-1/post", nil, nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-000042", resp.EntryNumber)
	suite.Len(resp.Lines, 2)
}

func (suite *ClassificationHandlerTestSuite) TestOverride_BadRequestOnMissingBody() {
	w := suite.perform(http.MethodPut, "/api/v1/classifications/cls-1/override", map[string]string{"debitAccountID": "only-one"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClassificationSvc.AssertNotCalled(suite.T(), "Override")
}

func (suite *ClassificationHandlerTestSuite) TestBatchClassify_ReportsPerItemErrors() {
	results := []dto.BatchClassificationResult{
		{TransactionID: "txn-1", Classification: &dto.ClassificationResponse{ClassificationID: "cls-1"}},
		{TransactionID: "txn-2", Error: "transaction not found"},
	}
	suite.mockClassificationSvc.On("ClassifyBatch", mock.Anything, []string{"txn-1", "txn-2"}, "system").Return(results).Once()

	w := suite.perform(http.MethodPost, "/api/v1/classifications/batch", dto.BatchClassifyRequest{TransactionIDs: []string{"txn-1", "txn-2"}}, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Results []dto.BatchClassificationResult `json:"results"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Results, 2)
	suite.Empty(resp.Results[0].Error)
	suite.Equal("transaction not found", resp.Results[1].Error)
}

func TestClassificationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClassificationHandlerTestSuite))
}
