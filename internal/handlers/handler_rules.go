package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/middleware"
)

// ruleHandler handles HTTP requests on the classification rule set.
type ruleHandler struct {
	ruleService portssvc.RuleSvcFacade
}

func newRuleHandler(rs portssvc.RuleSvcFacade) *ruleHandler {
	return &ruleHandler{ruleService: rs}
}

// registerRuleRoutes registers routes related to classification rules.
func registerRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.RuleSvcFacade) {
	h := newRuleHandler(ruleService)

	rules := rg.Group("/rules")
	{
		rules.GET("", h.listRules)
		rules.POST("/reload", h.reloadRules)
	}
}

// listRules returns every loaded rule in evaluation order.
func (h *ruleHandler) listRules(c *gin.Context) {
	rules := h.ruleService.ListRules(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// reloadRules re-reads the rules file and atomically swaps the active
// snapshot. Invalid rules are reported and skipped, never blocking the rest.
func (h *ruleHandler) reloadRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.ruleService.ReloadRules(c.Request.Context())
	if err != nil {
		logger.Error("Failed to reload rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload rules: " + err.Error()})
		return
	}

	logger.Info("Rules reloaded", slog.Int("loaded", result.Loaded), slog.Int("skipped", len(result.Skipped)))
	c.JSON(http.StatusOK, result)
}
