package types

import "github.com/reviewradar/review-api/internal/models"

// ReviewsRequest is the body for POST /api/v1/reviews
type ReviewsRequest struct {
	Product string `json:"product" binding:"required" example:"wireless earbuds"`
	// Limits overrides the per-platform result cap, keyed by platform
	// name ("youtube", "tiktok").
	Limits map[string]int `json:"limits,omitempty"`
}

// PlatformLimits converts the request limits to typed platform keys.
func (r ReviewsRequest) PlatformLimits() map[models.Platform]int {
	if len(r.Limits) == 0 {
		return nil
	}
	out := make(map[models.Platform]int, len(r.Limits))
	for k, v := range r.Limits {
		out[models.Platform(k)] = v
	}
	return out
}
