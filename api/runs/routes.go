package runs

import (
	"github.com/gin-gonic/gin"

	"github.com/reviewradar/review-api/api/types"
)

// RegisterRoutes registers run history routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/runs (router already includes /runs prefix)
	router.GET("", Get(deps))
}
