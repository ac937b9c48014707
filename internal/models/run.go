package models

import (
	"gorm.io/gorm"
)

// QueryRun records one completed pipeline run in the history database.
type QueryRun struct {
	gorm.Model
	Query             string         `json:"query" gorm:"not null;index"`
	Scope             string         `json:"scope"` // run directory under the downloads root
	TotalReviews      int            `json:"total_reviews"`
	WeightedAvgRating *float64       `json:"weighted_avg_rating"`
	ReviewCount       int            `json:"review_count"`
	Degraded          bool           `json:"degraded" gorm:"default:false"`
	Reviews           []StoredReview `json:"reviews,omitempty" gorm:"foreignKey:QueryRunID"`
}

// TableName specifies the table name for QueryRun
func (QueryRun) TableName() string {
	return "query_runs"
}

// StoredReview is one synthesized review row attached to a run.
type StoredReview struct {
	gorm.Model
	QueryRunID uint    `json:"query_run_id" gorm:"not null;index"`
	VideoTitle string  `json:"video_title"`
	Channel    string  `json:"channel"`
	ReviewText string  `json:"review_text" gorm:"type:text"`
	Rating     float64 `json:"rating"`
	SourceURL  string  `json:"video_url"`
}

// TableName specifies the table name for StoredReview
func (StoredReview) TableName() string {
	return "stored_reviews"
}
