package shopping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/reviewradar/review-api/pkg/errors"
)

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		Username: "user",
		Password: "pass",
		Endpoint: serverURL,
		Domain:   "com",
		Pages:    1,
	})
}

func TestFetchSignal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "user", user)
		assert.Equal(t, "pass", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "google_shopping_search", payload["source"])
		assert.Equal(t, "wireless earbuds", payload["query"])
		assert.Equal(t, true, payload["parse"])

		w.Write([]byte(`{
			"results": [
				{
					"content": {
						"results": {
							"organic": [
								{"title": "Earbuds A", "rating": 4.5, "reviews_count": 100, "thumbnail": "https://img.example.com/a.jpg"},
								{"title": "Earbuds B", "rating": 3.0, "reviews_count": 50},
								{"title": "No signal", "thumbnail": "https://img.example.com/c.jpg"}
							]
						}
					}
				}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	signal, err := client.FetchSignal(context.Background(), "wireless earbuds")

	require.NoError(t, err)
	require.Len(t, signal.Listings, 2)
	assert.Equal(t, 4.5, signal.Listings[0].Rating)
	assert.Equal(t, 100, signal.Listings[0].ReviewCount)
	assert.Equal(t, 3.0, signal.Listings[1].Rating)
	assert.Equal(t, 150, signal.TotalReviews())
	assert.Equal(t, []string{"https://img.example.com/a.jpg"}, signal.ImageURLs)
}

func TestFetchSignalSkipsPartialListings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [{"content": {"results": {"organic": [
				{"title": "rating only", "rating": 4.0},
				{"title": "count only", "reviews_count": 30},
				{"title": "zero values still count", "rating": 0, "reviews_count": 0}
			]}}}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	signal, err := client.FetchSignal(context.Background(), "blender")

	require.NoError(t, err)
	require.Len(t, signal.Listings, 1)
	assert.Equal(t, 0.0, signal.Listings[0].Rating)
	assert.Equal(t, 0, signal.Listings[0].ReviewCount)
}

func TestFetchSignalServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchSignal(context.Background(), "blender")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeSourceUnavailable))
}

func TestFetchSignalWithoutCredentials(t *testing.T) {
	client := NewClient(Config{Endpoint: "http://localhost:1"})
	_, err := client.FetchSignal(context.Background(), "blender")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeSourceUnavailable))
}

func TestFetchSignalEmptyQuery(t *testing.T) {
	client := newTestClient("http://localhost:1")
	_, err := client.FetchSignal(context.Background(), "")
	assert.Error(t, err)
}

func TestFetchSignalEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	signal, err := client.FetchSignal(context.Background(), "blender")

	require.NoError(t, err)
	assert.Empty(t, signal.Listings)
	assert.Equal(t, 0, signal.TotalReviews())
}
