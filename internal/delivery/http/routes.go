package http

import (
	"github.com/gin-gonic/gin"

	"github.com/schaplens/engine/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.POST("/enrich", handler.Enrich)
		v1.POST("/enrich/batch", handler.EnrichBatch)

		stats := v1.Group("/stats")
		{
			stats.GET("", handler.Stats)
			stats.POST("/reset", handler.ResetStats)
		}
	}

	return router
}
