package reviews

import (
	"context"

	"gorm.io/gorm"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/pkg/errors"
)

// Repository persists query runs in the history database.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a run-history repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveRun records one completed run with its review rows.
func (r *Repository) SaveRun(ctx context.Context, run *models.QueryRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return errors.DatabaseError("create query run", err)
	}
	return nil
}

// ListRuns returns recent runs newest first, review rows included.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]models.QueryRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var runs []models.QueryRun
	err := r.db.WithContext(ctx).
		Preload("Reviews").
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, errors.DatabaseError("list query runs", err)
	}
	return runs, nil
}
