package types

import (
	"github.com/reviewradar/review-api/internal/database"
	"github.com/reviewradar/review-api/internal/services/reviews"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	ReviewService reviews.Service
}
