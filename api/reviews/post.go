package reviews

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reviewradar/review-api/api/types"
	"github.com/reviewradar/review-api/pkg/errors"
)

// Post handles review aggregation requests
// @Summary      Aggregate reviews for a product
// @Description  Searches video platforms for reviews of the product, transcribes and synthesizes them, and merges in the shopping rating signal
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body types.ReviewsRequest true "Product query and optional per-platform limits"
// @Success      200 {object} types.ReviewSetResponse "Aggregated review report"
// @Failure      400 {object} types.ErrorResponse "Bad request - missing or empty product"
// @Failure      503 {object} types.ErrorResponse "No sources could be reached"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/reviews [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ReviewsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request format",
				Details: err.Error(),
			})
			return
		}

		if deps.ReviewService == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Review service not available",
			})
			return
		}

		set, err := deps.ReviewService.GetReviews(c.Request.Context(), req.Product, req.PlatformLimits())
		if err != nil {
			c.JSON(errors.GetHTTPCode(err), types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to aggregate reviews",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.ReviewSetResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Reviews aggregated successfully",
			},
			Report: set,
			Count:  len(set.Reviews),
		})
	}
}
