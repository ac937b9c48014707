package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reviewradar/review-api/internal/models"
	apperrors "github.com/reviewradar/review-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
	"items": [
		{
			"id": {"videoId": "vid1"},
			"snippet": {
				"title": "Honest Blender Review",
				"description": "my thoughts after a month",
				"channelTitle": "Kitchen Tests",
				"thumbnails": {"high": {"url": "https://i.ytimg.com/vi/vid1/hq.jpg"}}
			}
		}
	]
}`

const videosBody = `{
	"items": [
		{
			"id": "vid1",
			"snippet": {"defaultLanguage": "en", "defaultAudioLanguage": "en-US"},
			"statistics": {"viewCount": "1200", "likeCount": "80", "commentCount": "14"}
		}
	]
}`

func newTestClient(serverURL string, keys ...string) *Client {
	return NewClient(Config{
		APIKeys:   keys,
		BaseURL:   serverURL,
		Timeout:   5 * time.Second,
		RateLimit: 100,
	})
}

func TestSearchMapsVendorFields(t *testing.T) {
	var videosPart string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			fmt.Fprint(w, searchBody)
		case strings.HasSuffix(r.URL.Path, "/videos"):
			videosPart = r.URL.Query().Get("part")
			fmt.Fprint(w, videosBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, "key-1")
	items, err := client.Search(context.Background(), "blender", 3)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, models.PlatformYouTube, item.Platform)
	assert.Equal(t, "vid1", item.ExternalID)
	assert.Equal(t, "Honest Blender Review", item.Title)
	assert.Equal(t, "Kitchen Tests", item.Channel)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid1", item.URL)
	assert.Equal(t, int64(1200), item.ViewCount)
	assert.Equal(t, int64(80), item.LikeCount)
	assert.Equal(t, "https://i.ytimg.com/vi/vid1/hq.jpg", item.ThumbnailURL)
	assert.Equal(t, "en-US", item.Language)
	assert.Equal(t, "snippet,statistics", videosPart)
}

func TestSearchRotatesKeysOnQuota(t *testing.T) {
	var keysSeen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if strings.HasSuffix(r.URL.Path, "/search") {
			keysSeen = append(keysSeen, key)
		}
		if key == "spent-key" {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"error": {"errors": [{"reason": "quotaExceeded"}], "message": "quota exceeded"}}`)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/search") {
			fmt.Fprint(w, searchBody)
			return
		}
		fmt.Fprint(w, videosBody)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "spent-key", "fresh-key")

	items, err := client.Search(context.Background(), "blender", 3)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, []string{"spent-key", "fresh-key"}, keysSeen)

	// A new query batch forgets last batch's exhaustion and tries the
	// keys in priority order again; the vendor quota window may have
	// reset in between.
	keysSeen = nil
	_, err = client.Search(context.Background(), "blender", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"spent-key", "fresh-key"}, keysSeen)
}

func TestSearchAllKeysExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"message": "quota exceeded"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "k1", "k2")

	_, err := client.Search(context.Background(), "blender", 3)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeSourceUnavailable))
}

func TestSearchNoKeysConfigured(t *testing.T) {
	client := newTestClient("http://localhost:1")

	_, err := client.Search(context.Background(), "blender", 3)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeSourceUnavailable))
}

func TestSearchEmptyQuery(t *testing.T) {
	client := newTestClient("http://localhost:1", "k")
	_, err := client.Search(context.Background(), "", 3)
	assert.Error(t, err)
}
