package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/reviewradar/review-api/api/health"
	reviewsAPI "github.com/reviewradar/review-api/api/reviews"
	"github.com/reviewradar/review-api/api/runs"
	"github.com/reviewradar/review-api/api/types"
	"github.com/reviewradar/review-api/api/version"
	_ "github.com/reviewradar/review-api/docs/swagger"
	"github.com/reviewradar/review-api/internal/services/reviews"
	"github.com/reviewradar/review-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}
	if deps.ReviewService == nil {
		var gormDB *gorm.DB
		if deps.DB != nil && deps.DB.DB != nil {
			gormDB = deps.DB.DB
		}
		deps.ReviewService = reviews.BuildFromConfig(cfg, gormDB)
	}

	// API v1 routes
	v1 := engine.Group("/api/v1")

	limitFor := func(endpoint string, fallback int) gin.HandlerFunc {
		rps := fallback
		if n, ok := cfg.RateLimit.Endpoints[endpoint]; ok && n > 0 {
			rps = n
		}
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, rps*2)
	}

	// A review run downloads and transcribes media, so the reviews
	// endpoint gets the tightest limit.
	reviewsGroup := v1.Group("/reviews")
	if cfg.RateLimit.Enabled {
		reviewsGroup.Use(limitFor("reviews", 10))
	}
	reviewsAPI.RegisterRoutes(reviewsGroup, deps)

	runsGroup := v1.Group("/runs")
	if cfg.RateLimit.Enabled {
		runsGroup.Use(limitFor("runs", 60))
	}
	runs.RegisterRoutes(runsGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
