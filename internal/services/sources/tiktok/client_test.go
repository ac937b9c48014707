package tiktok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewradar/review-api/internal/models"
	apperrors "github.com/reviewradar/review-api/pkg/errors"
)

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		Token:     "test-token",
		BaseURL:   serverURL,
		Country:   "us",
		RateLimit: 100,
	})
}

func TestSearchMapsVendorFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tt/keyword/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "wireless earbuds review", q.Get("name"))
		assert.Equal(t, "test-token", q.Get("token"))
		assert.Equal(t, "us", q.Get("country"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"data": [
					{
						"aweme_info": {
							"aweme_id": "7301234567890",
							"desc": "honest earbuds review",
							"statistics": {"play_count": 15000, "digg_count": 900, "comment_count": 42},
							"author": {"nickname": "Tech Tia", "unique_id": "techtia"},
							"video": {"cover": {"url_list": ["https://cdn.example.com/cover.jpg"]}}
						}
					}
				]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	items, err := client.Search(context.Background(), "wireless earbuds", 5)

	require.NoError(t, err)
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, models.PlatformTikTok, item.Platform)
	assert.Equal(t, "7301234567890", item.ExternalID)
	assert.Equal(t, "honest earbuds review", item.Title)
	assert.Equal(t, "Tech Tia", item.Channel)
	assert.Equal(t, "https://www.tiktok.com/@techtia/video/7301234567890", item.URL)
	assert.Equal(t, int64(15000), item.ViewCount)
	assert.Equal(t, int64(900), item.LikeCount)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", item.ThumbnailURL)
}

func TestSearchHonorsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"data": [
			{"aweme_info": {"aweme_id": "1", "author": {"unique_id": "a"}}},
			{"aweme_info": {"aweme_id": "2", "author": {"unique_id": "b"}}},
			{"aweme_info": {"aweme_id": "3", "author": {"unique_id": "c"}}}
		]}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	items, err := client.Search(context.Background(), "blender", 2)

	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSearchSkipsEntriesWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"data": [
			{"aweme_info": {"aweme_id": "", "desc": "broken entry"}},
			{"aweme_info": {"aweme_id": "55", "author": {"unique_id": "ok"}}}
		]}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	items, err := client.Search(context.Background(), "blender", 5)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "55", items[0].ExternalID)
}

func TestSearchServerErrorIsSourceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), "blender", 5)

	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeSourceUnavailable, appErr.Code)
}

func TestSearchWithoutToken(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:1", RateLimit: 100})
	_, err := client.Search(context.Background(), "blender", 5)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeSourceUnavailable))
}

func TestSearchEmptyQuery(t *testing.T) {
	client := newTestClient("http://localhost:1")
	_, err := client.Search(context.Background(), "", 5)
	assert.Error(t, err)
}

func TestResolveMediaURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tt/video/details", r.URL.Path)
		assert.Equal(t, "7301234567890", r.URL.Query().Get("aweme_id"))
		w.Write([]byte(`{"data": {"video": {"play_addr": {"url_list": ["https://v16.tiktokcdn.com/play.mp4"]}}}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	mediaURL, err := client.ResolveMediaURL(context.Background(), models.CandidateItem{
		Platform:   models.PlatformTikTok,
		ExternalID: "7301234567890",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://v16.tiktokcdn.com/play.mp4", mediaURL)
}

func TestResolveMediaURLNoPlayAddr(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"video": {"play_addr": {"url_list": []}}}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ResolveMediaURL(context.Background(), models.CandidateItem{
		Platform:   models.PlatformTikTok,
		ExternalID: "99",
	})
	assert.Error(t, err)
}

func TestResolveMediaURLWrongPlatform(t *testing.T) {
	client := newTestClient("http://localhost:1")
	_, err := client.ResolveMediaURL(context.Background(), models.CandidateItem{
		Platform:   models.PlatformYouTube,
		ExternalID: "abc",
	})
	assert.Error(t, err)
}
