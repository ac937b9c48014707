package reviews

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewradar/review-api/api/types"
	"github.com/reviewradar/review-api/internal/models"
	apperrors "github.com/reviewradar/review-api/pkg/errors"
)

type mockService struct {
	set       *models.ReviewSet
	err       error
	gotQuery  string
	gotLimits map[models.Platform]int
}

func (m *mockService) GetReviews(ctx context.Context, query string, limits map[models.Platform]int) (*models.ReviewSet, error) {
	m.gotQuery = query
	m.gotLimits = limits
	if m.err != nil {
		return nil, m.err
	}
	return m.set, nil
}

func (m *mockService) ListRuns(ctx context.Context, limit int) ([]models.QueryRun, error) {
	return nil, nil
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	deps := &types.Dependencies{ReviewService: svc}
	group := router.Group("/api/v1/reviews")
	RegisterRoutes(group, deps)
	return router
}

func doPost(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPost(t *testing.T) {
	rating := 4.0
	svc := &mockService{set: &models.ReviewSet{
		Query:             "wireless earbuds",
		TotalReviews:      150,
		WeightedAvgRating: &rating,
		ImageURLs:         []string{"https://img.example.com/a.jpg"},
		Reviews: []models.SynthesizedReview{
			{ReviewText: "Solid for the price.", Rating: 4, SourceURL: "https://a.example.com"},
		},
	}}

	w := doPost(t, setupRouter(svc), `{"product": "wireless earbuds", "limits": {"youtube": 3}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "wireless earbuds", svc.gotQuery)
	assert.Equal(t, 3, svc.gotLimits[models.PlatformYouTube])

	var resp types.ReviewSetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.StatusOK, resp.Status)
	assert.Equal(t, 1, resp.Count)
	require.NotNil(t, resp.Report)
	assert.Equal(t, 150, resp.Report.TotalReviews)
}

func TestPostMissingProduct(t *testing.T) {
	w := doPost(t, setupRouter(&mockService{}), `{"limits": {"youtube": 3}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostMalformedBody(t *testing.T) {
	w := doPost(t, setupRouter(&mockService{}), `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostEmptyProduct(t *testing.T) {
	svc := &mockService{err: apperrors.New(apperrors.ErrCodeInvalidInput, "product query cannot be empty")}
	w := doPost(t, setupRouter(svc), `{"product": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostNoSources(t *testing.T) {
	svc := &mockService{err: apperrors.New(apperrors.ErrCodeNoSources, "no sources could be reached")}
	w := doPost(t, setupRouter(svc), `{"product": "blender"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.StatusError, resp.Status)
}

func TestPostServiceUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1/reviews")
	RegisterRoutes(group, &types.Dependencies{})

	w := doPost(t, router, `{"product": "blender"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
