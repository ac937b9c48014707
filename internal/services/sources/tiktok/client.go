package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/internal/services/sources"
	apperrors "github.com/reviewradar/review-api/pkg/errors"
)

// Config holds configuration for the EnsembleData TikTok client
type Config struct {
	Token     string
	BaseURL   string
	Country   string
	Timeout   time.Duration
	RateLimit int // requests per second
}

// Client searches TikTok through the EnsembleData API and can resolve
// a video's direct media URL for the fetcher's primary strategy.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	country     string
	rateLimiter *rate.Limiter
}

var _ sources.Adapter = (*Client)(nil)

// NewClient creates a new TikTok search client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://ensembledata.com/apis"
	}
	if cfg.Country == "" {
		cfg.Country = "us"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       cfg.Token,
		country:     cfg.Country,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
	}
}

// Platform identifies this adapter
func (c *Client) Platform() models.Platform {
	return models.PlatformTikTok
}

// keywordSearchResponse is the vendor shape for keyword search. The
// payload nests a data list inside a data object.
type keywordSearchResponse struct {
	Data struct {
		Data []struct {
			AwemeInfo struct {
				AwemeID    string `json:"aweme_id"`
				Desc       string `json:"desc"`
				Duration   int    `json:"duration"`
				Statistics struct {
					PlayCount    int64 `json:"play_count"`
					DiggCount    int64 `json:"digg_count"`
					CommentCount int64 `json:"comment_count"`
				} `json:"statistics"`
				Author struct {
					Nickname string `json:"nickname"`
					UniqueID string `json:"unique_id"`
				} `json:"author"`
				Video struct {
					Cover struct {
						URLList []string `json:"url_list"`
					} `json:"cover"`
				} `json:"video"`
			} `json:"aweme_info"`
		} `json:"data"`
	} `json:"data"`
}

// videoDetailsResponse is the vendor shape for video details
type videoDetailsResponse struct {
	Data struct {
		Video struct {
			PlayAddr struct {
				URLList []string `json:"url_list"`
			} `json:"play_addr"`
		} `json:"video"`
	} `json:"data"`
}

// Search queries TikTok for review videos about the product.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.CandidateItem, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if c.token == "" {
		return nil, apperrors.SourceUnavailable("tiktok", fmt.Errorf("no API token configured"))
	}
	if limit <= 0 {
		limit = 2
	}

	params := url.Values{}
	params.Set("name", query+" review")
	params.Set("cursor", "0")
	params.Set("period", "1")
	params.Set("sorting", "0")
	params.Set("country", c.country)
	params.Set("match_exactly", "false")
	params.Set("get_author_stats", "false")
	params.Set("token", c.token)

	var searchResp keywordSearchResponse
	if err := c.get(ctx, "/tt/keyword/search", params, &searchResp); err != nil {
		return nil, apperrors.SourceUnavailable("tiktok", err)
	}

	results := searchResp.Data.Data
	if len(results) > limit {
		results = results[:limit]
	}

	items := make([]models.CandidateItem, 0, len(results))
	for _, raw := range results {
		info := raw.AwemeInfo
		if info.AwemeID == "" {
			continue
		}
		item := models.CandidateItem{
			Platform:     models.PlatformTikTok,
			ExternalID:   info.AwemeID,
			Title:        info.Desc,
			Channel:      authorName(info.Author.Nickname),
			URL:          fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", info.Author.UniqueID, info.AwemeID),
			ViewCount:    nonNegative(info.Statistics.PlayCount),
			LikeCount:    nonNegative(info.Statistics.DiggCount),
			CommentCount: nonNegative(info.Statistics.CommentCount),
		}
		if len(info.Video.Cover.URLList) > 0 {
			item.ThumbnailURL = info.Video.Cover.URLList[0]
		}
		if err := item.Validate(); err != nil {
			log.Printf("[DEBUG] Skipping malformed TikTok result: %v", err)
			continue
		}
		items = append(items, item)
	}

	log.Printf("[DEBUG] TikTok search for %q returned %d candidates", query, len(items))
	return items, nil
}

// ResolveMediaURL asks the vendor's metadata endpoint for a direct
// media URL for the item. Used as the fetcher's primary strategy.
func (c *Client) ResolveMediaURL(ctx context.Context, item models.CandidateItem) (string, error) {
	if item.Platform != models.PlatformTikTok {
		return "", fmt.Errorf("resolver only handles tiktok items, got %s", item.Platform)
	}
	if c.token == "" {
		return "", fmt.Errorf("no API token configured")
	}

	params := url.Values{}
	params.Set("aweme_id", item.ExternalID)
	params.Set("token", c.token)

	var details videoDetailsResponse
	if err := c.get(ctx, "/tt/video/details", params, &details); err != nil {
		return "", err
	}

	urls := details.Data.Video.PlayAddr.URLList
	if len(urls) == 0 {
		return "", fmt.Errorf("no direct media url in video details")
	}
	return urls[0], nil
}

// get performs one API request and decodes the response.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func authorName(nickname string) string {
	if nickname == "" {
		return "TikTok Creator"
	}
	return nickname
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
