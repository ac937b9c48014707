package runs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reviewradar/review-api/api/types"
)

// Get handles run history requests
// @Summary      List recent query runs
// @Description  Returns recent review aggregation runs recorded in the history database, newest first
// @Tags         runs
// @Produce      json
// @Param        limit query int false "Maximum number of runs to return (default 20, max 100)"
// @Success      200 {object} types.RunsResponse "Recent runs"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/runs [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.ReviewService == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Review service not available",
			})
			return
		}

		limit := 20
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				c.JSON(http.StatusBadRequest, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Limit must be a positive integer",
				})
				return
			}
			limit = parsed
		}

		runs, err := deps.ReviewService.ListRuns(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to list runs",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.RunsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Runs retrieved successfully",
			},
			Runs:  runs,
			Count: len(runs),
		})
	}
}
