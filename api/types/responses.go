package types

import "github.com/reviewradar/review-api/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ReviewSetResponse wraps the aggregated report for one product query
type ReviewSetResponse struct {
	BaseResponse
	Report *models.ReviewSet `json:"report"`
	Count  int               `json:"count"` // Number of synthesized reviews
}

// RunsResponse lists recent query runs from the history database
type RunsResponse struct {
	BaseResponse
	Runs  []models.QueryRun `json:"runs"`
	Count int               `json:"count"`
}
