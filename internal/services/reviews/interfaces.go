package reviews

import (
	"context"

	"github.com/reviewradar/review-api/internal/models"
)

// MediaFetcher produces the local audio asset for one candidate item.
type MediaFetcher interface {
	Fetch(ctx context.Context, item models.CandidateItem, itemDir string) (*models.MediaAsset, error)
}

// TranscriptProducer converts an audio asset into a language-gated
// transcript.
type TranscriptProducer interface {
	Transcribe(ctx context.Context, item models.CandidateItem, asset *models.MediaAsset) (*models.Transcript, error)
}

// ReviewSynthesizer generates one review from a persisted record.
type ReviewSynthesizer interface {
	Synthesize(ctx context.Context, record models.PersistedRecord) (*models.SynthesizedReview, error)
}

// Service is the public surface the API and CLI consume.
type Service interface {
	// GetReviews runs the full pipeline for a product query and
	// returns the normalized report.
	GetReviews(ctx context.Context, query string, limits map[models.Platform]int) (*models.ReviewSet, error)

	// ListRuns returns recent query runs from the history database,
	// newest first.
	ListRuns(ctx context.Context, limit int) ([]models.QueryRun, error)
}
