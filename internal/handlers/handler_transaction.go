package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerkit/ledgerkit/internal/apperrors"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/dto"
	"github.com/ledgerkit/ledgerkit/internal/middleware"
)

// transactionHandler handles HTTP requests related to ingested transactions.
type transactionHandler struct {
	transactionService    portssvc.TransactionSvcFacade
	classificationService portssvc.ClassificationSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, cs portssvc.ClassificationSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts, classificationService: cs}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, classificationService portssvc.ClassificationSvcFacade) {
	h := newTransactionHandler(transactionService, classificationService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.importTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/classify", h.classifyTransaction)
	}
}

// importTransaction registers a deduplicated transaction for later
// classification. Re-importing the same source row yields 409.
func (h *transactionHandler) importTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorFromRequest(c)
	txn, err := h.transactionService.ImportTransaction(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate transaction import", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error importing transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to import transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import transaction"})
		}
		return
	}

	logger.Info("Transaction imported", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction retrieves a transaction by ID.
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// classifyTransaction runs the rule engine against one transaction and
// persists the resulting pending classification.
func (h *transactionHandler) classifyTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	actor := actorFromRequest(c)
	classification, err := h.classificationService.Classify(c.Request.Context(), transactionID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Transaction not classifiable in current state", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to classify transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify transaction"})
		}
		return
	}

	logger.Info("Transaction classified",
		slog.String("transaction_id", transactionID),
		slog.String("classification_id", classification.ClassificationID),
		slog.String("rule_name", classification.RuleName),
	)
	c.JSON(http.StatusCreated, dto.ToClassificationResponse(classification))
}
