package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safescan/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)))
	{
		v1.POST("/score", handler.ScoreProduct)
		v1.POST("/ingredients/classify", handler.ClassifyIngredients)
		v1.POST("/risk/assess", handler.AssessRisk)
		v1.POST("/recommendations", handler.Recommend)
		v1.POST("/analyze", handler.AnalyzeProduct)
		v1.POST("/compare", handler.CompareProducts)
		v1.POST("/insights", handler.Insights)

		products := v1.Group("/products")
		{
			products.GET("/search", handler.SearchProducts)
			products.GET("/:barcode", handler.GetProduct)
			products.POST("/:barcode/analyze", handler.AnalyzeBarcode)
		}
	}

	return router
}
