package reviews

import (
	"github.com/gin-gonic/gin"

	"github.com/reviewradar/review-api/api/types"
)

// RegisterRoutes registers review aggregation routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/v1/reviews (router already includes /reviews prefix)
	router.POST("", Post(deps))
}
