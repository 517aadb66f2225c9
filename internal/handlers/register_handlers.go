package handlers

import (
	"github.com/ezbillify/ezbillify-backend/cmd/docs"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/middleware"
	"github.com/ezbillify/ezbillify-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	registerHomeRoutes(r)

	// Public authentication routes
	registerAuthRoutes(r, services)

	// Everything under /api/v1 requires a valid token
	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r)
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.UserSvc)
	registerCompanyRoutes(v1, services.CompanySvc)

	// Company-scoped resources. Tenancy is enforced in the services: every
	// operation authorizes the caller's role in :companyId before acting.
	company := v1.Group("/companies/:companyId")
	registerAccountRoutes(company, services.AccountSvc, services.LedgerSvc)
	registerPartyRoutes(company, services.PartySvc)
	registerDocumentRoutes(company, services.DocumentSvc)
	registerNumberingRoutes(company, services.NumberingSvc, services.CompanySvc)
	registerPaymentRoutes(company, services.PaymentSvc)
}

func setupSwaggerRoutes(r *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
