package runs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewradar/review-api/api/types"
	"github.com/reviewradar/review-api/internal/models"
)

type mockService struct {
	runs     []models.QueryRun
	err      error
	gotLimit int
}

func (m *mockService) GetReviews(ctx context.Context, query string, limits map[models.Platform]int) (*models.ReviewSet, error) {
	return nil, nil
}

func (m *mockService) ListRuns(ctx context.Context, limit int) ([]models.QueryRun, error) {
	m.gotLimit = limit
	return m.runs, m.err
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1/runs")
	RegisterRoutes(group, &types.Dependencies{ReviewService: svc})
	return router
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGet(t *testing.T) {
	svc := &mockService{runs: []models.QueryRun{
		{Query: "wireless earbuds", ReviewCount: 2},
		{Query: "blender", ReviewCount: 1},
	}}

	w := doGet(setupRouter(svc), "/api/v1/runs")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, svc.gotLimit)

	var resp types.RunsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.StatusOK, resp.Status)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "wireless earbuds", resp.Runs[0].Query)
}

func TestGetCustomLimit(t *testing.T) {
	svc := &mockService{}
	w := doGet(setupRouter(svc), "/api/v1/runs?limit=5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, svc.gotLimit)
}

func TestGetInvalidLimit(t *testing.T) {
	tests := []string{"abc", "0", "-3"}
	for _, limit := range tests {
		t.Run(limit, func(t *testing.T) {
			w := doGet(setupRouter(&mockService{}), "/api/v1/runs?limit="+limit)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetServiceError(t *testing.T) {
	svc := &mockService{err: errors.New("database closed")}
	w := doGet(setupRouter(svc), "/api/v1/runs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetServiceUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1/runs")
	RegisterRoutes(group, &types.Dependencies{})

	w := doGet(router, "/api/v1/runs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
