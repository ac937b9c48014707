package sources

import (
	"context"

	"github.com/reviewradar/review-api/internal/models"
)

// Adapter abstracts one video platform's search API. Implementations
// map vendor JSON into CandidateItem; nothing downstream of an adapter
// may depend on vendor field names.
type Adapter interface {
	// Platform identifies which platform this adapter serves.
	Platform() models.Platform

	// Search returns up to limit candidate items for the query,
	// ordered by the platform's relevance.
	Search(ctx context.Context, query string, limit int) ([]models.CandidateItem, error)
}

// ListingsProvider abstracts the shopping listings API that supplies
// the numeric rating signal and representative images.
type ListingsProvider interface {
	// FetchSignal returns the (rating, review count) pairs and image
	// URLs the listings carry for the query.
	FetchSignal(ctx context.Context, query string) (*models.NumericSignal, error)
}
