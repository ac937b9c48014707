// Package reviews orchestrates the product review pipeline and exposes
// it as the service the API and CLI consume.
package reviews

import (
	"context"
	"log"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/pkg/errors"
)

type service struct {
	pipeline *Pipeline
	repo     *Repository
}

// NewService wraps the pipeline with run-history recording. repo may
// be nil for one-shot CLI use without a database.
func NewService(pipeline *Pipeline, repo *Repository) Service {
	return &service{pipeline: pipeline, repo: repo}
}

func (s *service) GetReviews(ctx context.Context, query string, limits map[models.Platform]int) (*models.ReviewSet, error) {
	result, err := s.pipeline.Run(ctx, query, limits)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.SaveRun(ctx, runRecord(result)); err != nil {
			// History is bookkeeping; losing a row must not fail the run.
			log.Printf("[ERROR] Failed to record run for %q: %v", query, err)
		}
	}
	return result.Set, nil
}

func (s *service) ListRuns(ctx context.Context, limit int) ([]models.QueryRun, error) {
	if s.repo == nil {
		return nil, errors.New(errors.ErrCodeDatabaseConnection, "run history database is not configured")
	}
	return s.repo.ListRuns(ctx, limit)
}

func runRecord(result *RunResult) *models.QueryRun {
	set := result.Set
	run := &models.QueryRun{
		Query:             set.Query,
		Scope:             result.Scope,
		TotalReviews:      set.TotalReviews,
		WeightedAvgRating: set.WeightedAvgRating,
		ReviewCount:       len(set.Reviews),
		Degraded:          result.Degraded,
	}
	for _, r := range set.Reviews {
		run.Reviews = append(run.Reviews, models.StoredReview{
			VideoTitle: r.VideoTitle,
			Channel:    r.Channel,
			ReviewText: r.ReviewText,
			Rating:     r.Rating,
			SourceURL:  r.SourceURL,
		})
	}
	return run
}
