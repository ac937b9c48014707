// Package aggregator merges synthesized reviews and the shopping
// numeric signal into the final normalized report for a query.
package aggregator

import (
	"log"
	"math"
	"strings"

	"github.com/reviewradar/review-api/internal/models"
)

// Dedupe removes reviews that share a source URL, keeping the first
// occurrence. Reviews without a source URL are always kept.
func Dedupe(reviews []models.SynthesizedReview) []models.SynthesizedReview {
	seen := make(map[string]bool, len(reviews))
	out := make([]models.SynthesizedReview, 0, len(reviews))
	for _, r := range reviews {
		if r.SourceURL != "" {
			if seen[r.SourceURL] {
				log.Printf("[DEBUG] Dropping duplicate review for %s", r.SourceURL)
				continue
			}
			seen[r.SourceURL] = true
		}
		out = append(out, r)
	}
	return out
}

// FilterImageURLs keeps only http and https URLs. Anything else is
// rejected with a log line.
func FilterImageURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			out = append(out, u)
			continue
		}
		log.Printf("[DEBUG] Rejecting image URL with unsupported scheme: %s", u)
	}
	return out
}

// WeightedAverage computes the review-count weighted mean rating,
// rounded to two decimals. It returns nil when the listings carry no
// review counts at all, because an absent signal is not a zero rating.
func WeightedAverage(listings []models.ListingStat) *float64 {
	var weightedSum float64
	var totalCount int
	for _, l := range listings {
		weightedSum += l.Rating * float64(l.ReviewCount)
		totalCount += l.ReviewCount
	}
	if totalCount == 0 {
		return nil
	}
	avg := math.Round(weightedSum/float64(totalCount)*100) / 100
	return &avg
}

// Build assembles the final report. signal may be nil when the
// shopping source contributed nothing.
func Build(query string, reviews []models.SynthesizedReview, signal *models.NumericSignal) *models.ReviewSet {
	set := &models.ReviewSet{
		Query:     query,
		Reviews:   Dedupe(reviews),
		ImageURLs: []string{},
	}
	if signal != nil {
		set.TotalReviews = signal.TotalReviews()
		set.WeightedAvgRating = WeightedAverage(signal.Listings)
		set.ImageURLs = FilterImageURLs(signal.ImageURLs)
	}
	return set
}
