package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reviewradar/review-api/api/types"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "ReviewRadar API",
			"version":     "1.0.0",
			"description": "API for aggregating product reviews from video and shopping sources",
			"status":      "running",
		})
	}
}

// RegisterRoutes registers version routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) {
	engine.GET("/version", Get())
}
