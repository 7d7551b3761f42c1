package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	portssvc "github.com/ledgerkit/ledgerkit/internal/core/ports/services"
	"github.com/ledgerkit/ledgerkit/internal/middleware"
	"github.com/ledgerkit/ledgerkit/internal/platform/config"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	registerCustomValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services, limiterInstance)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))

	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction, services.Classification)
	registerClassificationRoutes(v1, services.Classification, services.Posting)
	registerJournalRoutes(v1, services.Posting)
	registerReportingRoutes(v1, services.Ledger)
	registerRuleRoutes(v1, services.Rule)
}

// registerCustomValidations wires binding validations that delegate to the
// domain enums, so request validation and domain validation cannot drift.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
			_, ok := domain.NormalSideOf(domain.AccountType(fl.Field().String()))
			return ok
		})
	}
}

// actorFromRequest resolves the acting identity for audit fields. There is no
// authentication layer; callers may identify themselves via X-Actor-ID.
func actorFromRequest(c *gin.Context) string {
	if actor := c.GetHeader("X-Actor-ID"); actor != "" {
		return actor
	}
	return "system"
}
