package shopping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/internal/services/sources"
	apperrors "github.com/reviewradar/review-api/pkg/errors"
)

// Config holds configuration for the shopping listings client
type Config struct {
	Username string
	Password string
	Endpoint string
	Domain   string
	Pages    int
	Timeout  time.Duration
}

// Client fetches shopping listings through a scraping proxy's realtime
// API and reduces them to the numeric rating signal.
type Client struct {
	httpClient *http.Client
	username   string
	password   string
	endpoint   string
	domain     string
	pages      int
}

var _ sources.ListingsProvider = (*Client)(nil)

// NewClient creates a new shopping listings client
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://realtime.oxylabs.io/v1/queries"
	}
	if cfg.Domain == "" {
		cfg.Domain = "com"
	}
	if cfg.Pages <= 0 {
		cfg.Pages = 1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		username:   cfg.Username,
		password:   cfg.Password,
		endpoint:   cfg.Endpoint,
		domain:     cfg.Domain,
		pages:      cfg.Pages,
	}
}

type searchPayload struct {
	Source  string           `json:"source"`
	Domain  string           `json:"domain"`
	Query   string           `json:"query"`
	Pages   int              `json:"pages"`
	Parse   bool             `json:"parse"`
	Context []contextSetting `json:"context"`
}

type contextSetting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// organicListing is one parsed shopping result. Rating and review
// count are pointers so that absent values are distinguishable from
// zero; a listing missing either carries no usable signal.
type organicListing struct {
	Title        string   `json:"title"`
	Rating       *float64 `json:"rating"`
	ReviewsCount *int     `json:"reviews_count"`
	Thumbnail    string   `json:"thumbnail"`
}

type searchResponse struct {
	Results []struct {
		Content struct {
			Results struct {
				Organic []organicListing `json:"organic"`
			} `json:"results"`
		} `json:"content"`
	} `json:"results"`
}

// FetchSignal queries the listings API and aggregates the per-listing
// ratings into a NumericSignal.
func (c *Client) FetchSignal(ctx context.Context, query string) (*models.NumericSignal, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if c.username == "" || c.password == "" {
		return nil, apperrors.SourceUnavailable("shopping", fmt.Errorf("no credentials configured"))
	}

	payload := searchPayload{
		Source:  "google_shopping_search",
		Domain:  c.domain,
		Query:   query,
		Pages:   c.pages,
		Parse:   true,
		Context: []contextSetting{{Key: "sort_by", Value: "r"}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.SourceUnavailable("shopping", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, apperrors.SourceUnavailable("shopping",
			fmt.Errorf("listings API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.SourceUnavailable("shopping", fmt.Errorf("decoding response: %w", err))
	}

	signal := &models.NumericSignal{}
	skipped := 0
	for _, page := range parsed.Results {
		pageImage := ""
		for _, listing := range page.Content.Results.Organic {
			if pageImage == "" && listing.Thumbnail != "" {
				pageImage = listing.Thumbnail
			}
			if listing.Rating == nil || listing.ReviewsCount == nil {
				skipped++
				continue
			}
			signal.Listings = append(signal.Listings, models.ListingStat{
				Rating:      *listing.Rating,
				ReviewCount: *listing.ReviewsCount,
			})
		}
		if pageImage != "" {
			signal.ImageURLs = append(signal.ImageURLs, pageImage)
		}
	}

	if skipped > 0 {
		log.Printf("[DEBUG] Shopping signal for %q skipped %d listings without rating or review count", query, skipped)
	}
	log.Printf("[DEBUG] Shopping signal for %q: %d listings, %d images", query, len(signal.Listings), len(signal.ImageURLs))
	return signal, nil
}
