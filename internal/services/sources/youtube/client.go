package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/internal/services/sources"
	apperrors "github.com/reviewradar/review-api/pkg/errors"
)

// Config holds configuration for the YouTube Data API client
type Config struct {
	APIKeys   []string
	BaseURL   string
	Timeout   time.Duration
	RateLimit int // requests per second
}

// Client searches YouTube via the Data API v3 and maps the results to
// candidate items. Several API keys may be configured; a key that
// reports quota exhaustion is skipped for the rest of the batch.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	keyring     *sources.Keyring
	rateLimiter *rate.Limiter
}

var _ sources.Adapter = (*Client)(nil)

// NewClient creates a new YouTube search client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.googleapis.com/youtube/v3"
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
		keyring:     sources.NewKeyring(cfg.APIKeys),
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
	}
}

// Platform identifies this adapter
func (c *Client) Platform() models.Platform {
	return models.PlatformYouTube
}

// searchResponse is the vendor shape for search.list
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// videosResponse is the vendor shape for videos.list
type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			DefaultLanguage      string `json:"defaultLanguage"`
			DefaultAudioLanguage string `json:"defaultAudioLanguage"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// videoMeta is the per-video detail pulled from videos.list.
type videoMeta struct {
	views, likes, comments int64
	language               string
}

// Search queries YouTube for review videos about the product. API keys
// are tried in priority order; quota errors rotate to the next key.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.CandidateItem, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if limit <= 0 {
		limit = 3
	}

	if c.keyring.Len() == 0 {
		return nil, apperrors.SourceUnavailable("youtube", fmt.Errorf("no API keys configured"))
	}

	// Exhaustion memory is scoped to one query batch; the vendor quota
	// window may have reset since the last batch.
	c.keyring.Reset()
	keys := c.keyring.Active()

	var lastErr error
	for _, key := range keys {
		items, err := c.searchWithKey(ctx, query, limit, key)
		if err == nil {
			return items, nil
		}
		if apperrors.Is(err, apperrors.ErrCodeQuotaExhausted) {
			log.Printf("[DEBUG] YouTube API key ...%s exhausted, trying next key", tail(key))
			c.keyring.MarkExhausted(key)
			lastErr = err
			continue
		}
		return nil, apperrors.SourceUnavailable("youtube", err)
	}

	return nil, apperrors.SourceUnavailable("youtube",
		fmt.Errorf("%w (last error: %v)", sources.ErrAllKeysExhausted, lastErr))
}

// searchWithKey performs the search.list + videos.list round trip with
// one credential.
func (c *Client) searchWithKey(ctx context.Context, query string, limit int, key string) ([]models.CandidateItem, error) {
	params := url.Values{}
	params.Set("q", query+" review")
	params.Set("part", "id,snippet")
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("type", "video")
	params.Set("relevanceLanguage", "en")
	params.Set("key", key)

	var searchResp searchResponse
	if err := c.get(ctx, "search", params, &searchResp); err != nil {
		return nil, err
	}

	if len(searchResp.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	statsParams := url.Values{}
	statsParams.Set("part", "snippet,statistics")
	statsParams.Set("id", strings.Join(ids, ","))
	statsParams.Set("key", key)

	var videosResp videosResponse
	if err := c.get(ctx, "videos", statsParams, &videosResp); err != nil {
		return nil, err
	}

	stats := make(map[string]videoMeta, len(videosResp.Items))
	for _, v := range videosResp.Items {
		language := v.Snippet.DefaultAudioLanguage
		if language == "" {
			language = v.Snippet.DefaultLanguage
		}
		stats[v.ID] = videoMeta{
			views:    parseCount(v.Statistics.ViewCount),
			likes:    parseCount(v.Statistics.LikeCount),
			comments: parseCount(v.Statistics.CommentCount),
			language: language,
		}
	}

	items := make([]models.CandidateItem, 0, len(searchResp.Items))
	for _, raw := range searchResp.Items {
		id := raw.ID.VideoID
		if id == "" {
			continue
		}
		s := stats[id]
		item := models.CandidateItem{
			Platform:     models.PlatformYouTube,
			ExternalID:   id,
			Title:        raw.Snippet.Title,
			Channel:      raw.Snippet.ChannelTitle,
			Description:  raw.Snippet.Description,
			URL:          "https://www.youtube.com/watch?v=" + id,
			ViewCount:    s.views,
			LikeCount:    s.likes,
			CommentCount: s.comments,
			ThumbnailURL: raw.Snippet.Thumbnails.High.URL,
			Language:     s.language,
		}
		if err := item.Validate(); err != nil {
			log.Printf("[DEBUG] Skipping malformed YouTube result: %v", err)
			continue
		}
		items = append(items, item)
	}

	log.Printf("[DEBUG] YouTube search for %q returned %d candidates", query, len(items))
	return items, nil
}

// get performs one API request and decodes the response.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

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
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if resp.StatusCode == http.StatusForbidden && strings.Contains(strings.ToLower(string(body)), "quota") {
			return apperrors.QuotaExhausted("youtube", fmt.Errorf("API returned status %d", resp.StatusCode))
		}
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// parseCount parses the string counters the vendor returns.
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// tail returns the last few characters of a key for logging.
func tail(key string) string {
	if len(key) <= 6 {
		return key
	}
	return key[len(key)-6:]
}
