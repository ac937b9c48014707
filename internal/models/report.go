package models

// SynthesizedReview is one first-person review statement generated
// from a persisted record.
type SynthesizedReview struct {
	VideoTitle string  `json:"video_title"`
	Channel    string  `json:"channel"`
	ReviewText string  `json:"review_text"`
	Rating     float64 `json:"rating"`
	SourceURL  string  `json:"video_url"`
}

// ListingStat is one shopping listing's (rating, review count) pair.
// Listings missing either number contribute nothing and are never
// constructed.
type ListingStat struct {
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviews_count"`
}

// NumericSignal is the shopping source's contribution: rating/count
// pairs for the weighted average plus representative images.
type NumericSignal struct {
	Listings  []ListingStat `json:"listings"`
	ImageURLs []string      `json:"image_urls"`
}

// TotalReviews sums the review counts across all listings.
func (s NumericSignal) TotalReviews() int {
	total := 0
	for _, l := range s.Listings {
		total += l.ReviewCount
	}
	return total
}

// ReviewSet is the final normalized report for one query.
// WeightedAvgRating is nil when the listings carried no review counts
// at all - absent means "no signal", which is distinct from zero.
type ReviewSet struct {
	Query             string              `json:"query"`
	TotalReviews      int                 `json:"total_reviews"`
	WeightedAvgRating *float64            `json:"weighted_avg_rating,omitempty"`
	ImageURLs         []string            `json:"img_urls"`
	Summary           string              `json:"summary,omitempty"`
	Reviews           []SynthesizedReview `json:"reviews"`
}
