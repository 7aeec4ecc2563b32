package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	portssvc "github.com/socioges/treasury_backend/internal/core/ports/services"
	"github.com/socioges/treasury_backend/internal/middleware"
	"github.com/socioges/treasury_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceProvider,
) {
	registerCustomValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerHomeRoutes(r)

	setupAPIV1Routes(r, cfg, services)
}

// registerCustomValidators hooks domain validations into gin's binding layer.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// Every money amount in a request payload must be strictly positive; the
	// sign of its balance effect comes from the record kind, never the input.
	_ = v.RegisterValidation("positiveamount", func(fl validator.FieldLevel) bool {
		amount, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return amount.GreaterThan(decimal.Zero)
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceProvider,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.AccountSvc)
	registerEntryRoutes(v1, services.LedgerSvc)
	registerTransferRoutes(v1, services.LedgerSvc)
	registerReconciliationRoutes(v1, services.ReconciliationSvc)
	registerCategoryRoutes(v1, services.CategorySvc)
}
