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

// classificationHandler handles HTTP requests on classifications themselves:
// batch classification, overrides and posting.
type classificationHandler struct {
	classificationService portssvc.ClassificationSvcFacade
	postingService        portssvc.PostingSvcFacade
}

func newClassificationHandler(cs portssvc.ClassificationSvcFacade, ps portssvc.PostingSvcFacade) *classificationHandler {
	return &classificationHandler{classificationService: cs, postingService: ps}
}

// registerClassificationRoutes registers routes related to classifications.
func registerClassificationRoutes(rg *gin.RouterGroup, classificationService portssvc.ClassificationSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newClassificationHandler(classificationService, postingService)

	classifications := rg.Group("/classifications")
	{
		classifications.POST("/batch", h.classifyBatch)
		classifications.PUT("/:id/override", h.overrideClassification)
		classifications.POST("/:id/post", h.postClassification)
	}
}

// classifyBatch classifies a batch of transactions. Per-item failures are
// reported in the response body; the endpoint itself succeeds.
func (h *classificationHandler) classifyBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ClassifyBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorFromRequest(c)
	results := h.classificationService.ClassifyBatch(c.Request.Context(), req.TransactionIDs, actor)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	logger.Info("Batch classification completed", slog.Int("total", len(results)), slog.Int("failed", failed))
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// overrideClassification replaces a pending classification's account pair
// with an operator decision. Posted classifications are immutable.
func (h *classificationHandler) overrideClassification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	classificationID := c.Param("id")

	var req dto.OverrideClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OverrideClassification", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorFromRequest(c)
	classification, err := h.classificationService.Override(c.Request.Context(), classificationID, req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classification not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Attempt to override non-pending classification", slog.String("classification_id", classificationID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to override classification", slog.String("classification_id", classificationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to override classification"})
		}
		return
	}

	logger.Info("Classification overridden", slog.String("classification_id", classificationID), slog.String("actor", actor))
	c.JSON(http.StatusOK, dto.ToClassificationResponse(classification))
}

// postClassification converts a pending classification into a balanced
// journal entry. Posting the same classification twice yields 409 and no
// second entry.
func (h *classificationHandler) postClassification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	classificationID := c.Param("id")

	actor := actorFromRequest(c)
	entry, err := h.postingService.Post(c.Request.Context(), classificationID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classification not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Attempt to post non-pending classification", slog.String("classification_id", classificationID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrPosting) {
			logger.Warn("Posting preconditions not met", slog.String("classification_id", classificationID), slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConsistency) {
			logger.Error("Consistency violation while posting", slog.String("classification_id", classificationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to post classification", slog.String("classification_id", classificationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post classification"})
		}
		return
	}

	logger.Info("Classification posted", slog.String("classification_id", classificationID), slog.String("entry_id", entry.EntryID), slog.Int64("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
