package v1

import (
	"humusgarden-backend/config"
	"humusgarden-backend/internal/delivery/http/middleware"
	"humusgarden-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  domain.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	r.NoRoute(middleware.NoRoute)

	NewHealthHandler(&r.RouterGroup, deps.HealthUC)

	api := r.Group("/api")
	api.Use(middleware.BodyLimit(deps.Config.BodyLimitBytes))
	NewContactHandler(api, deps.ContactUC)

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
