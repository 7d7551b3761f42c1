package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerkit/ledgerkit/internal/apperrors"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/middleware"
)

// reportingHandler handles read-only ledger reports.
type reportingHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newReportingHandler(ls portssvc.LedgerSvcFacade) *reportingHandler {
	return &reportingHandler{ledgerService: ls}
}

// registerReportingRoutes registers routes related to ledger reports.
func registerReportingRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newReportingHandler(ledgerService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
	}
}

// getTrialBalance computes the trial balance as of the asOf query parameter
// (date or RFC3339 timestamp), defaulting to now. An unbalanced ledger still
// returns the report, with a 500 status so monitors fire.
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := parseAsOf(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf: expected YYYY-MM-DD or RFC3339 timestamp"})
			return
		}
		asOf = parsed
	}

	report, err := h.ledgerService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrConsistency) && report != nil {
			logger.Error("Trial balance does not balance", slog.Time("as_of", asOf), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "trialBalance": report})
		} else {
			logger.Error("Failed to compute trial balance", slog.Time("as_of", asOf), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

func parseAsOf(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		// End of the given day, so entries dated that day are included.
		return t.Add(24*time.Hour - time.Nanosecond), nil
	}
	return time.Parse(time.RFC3339, raw)
}
