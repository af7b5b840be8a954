package handlers

import (
	"github.com/SscSPs/print_quota_service/cmd/docs"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/middleware"
	"github.com/SscSPs/print_quota_service/internal/platform/config"
	"github.com/SscSPs/print_quota_service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// rateLimiter and posthogClient may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
) {
	registerValidators()

	r.GET("/health", getHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Called by the payment service, authenticated by a shared key instead of a user JWT
	internal := r.Group("/internal", middleware.ServiceKeyAuth(cfg.PaymentServiceKeyHash))
	registerPaymentCallbackRoutes(internal, services.Payment)

	setupAPIV1Routes(r, cfg, services, rateLimiter, posthogClient)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if rateLimiter != nil {
		v1.Use(middleware.RateLimit(rateLimiter))
	}
	v1.Use(middleware.PosthogMiddleware(posthogClient))

	registerPrinterRoutes(v1, services.Printer)
	registerDocumentRoutes(v1, services.Document, cfg.MaxUploadBytes)
	registerPrintJobRoutes(v1, services.Submission, services.PrintJob)
	registerBalanceRoutes(v1, services.Ledger)
	registerTopUpRoutes(v1, services.Payment)
	registerAdminRoutes(v1, services.Ledger, services.PrintJob)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
