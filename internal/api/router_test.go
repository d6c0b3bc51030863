package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hbsc-labs/insight/internal/config"
	"github.com/hbsc-labs/insight/internal/store"
)

func testRouter(t *testing.T, ms *MockStore) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{AdminToken: "secret"},
		Analysis: testAnalysis(),
	}
	return NewRouter(ms, testBarometer(t), nil, nil, nil, cfg, discardLogger())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ms := &MockStore{}
	ms.On("DatasetStats", mock.Anything).Return(&store.DatasetStats{TotalRecords: 3}, nil)
	router := testRouter(t, ms)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("GET", "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicRoutesSkipAuth(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListRecords", mock.Anything, mock.Anything).Return(overviewRecords(), nil)
	router := testRouter(t, ms)

	req := httptest.NewRequest("GET", "/api/v1/overview", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsRouterHealth(t *testing.T) {
	router := NewMetricsRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
