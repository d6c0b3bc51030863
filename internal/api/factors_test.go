package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hbsc-labs/insight/internal/config"
	"github.com/hbsc-labs/insight/internal/store"
	"github.com/hbsc-labs/insight/internal/survey"
)

// MockStore implements store.Store for handler tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListRecords(ctx context.Context, filter store.Filter) ([]survey.Record, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]survey.Record), args.Error(1)
}

func (m *MockStore) Years(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockStore) Countries(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) DatasetStats(ctx context.Context) (*store.DatasetStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.DatasetStats), args.Error(1)
}

func (m *MockStore) Close() error { return nil }

func testAnalysis() config.AnalysisConfig {
	return config.AnalysisConfig{DetailYear: 2018, DefaultTopK: 5, MaxRows: 1000}
}

func rankingRecords() []survey.Record {
	// SWEETS tracks the outcome exactly; FRUITS never varies.
	return []survey.Record{
		{Year: 2018, Sex: survey.SexBoys, Overweight: 0, Factors: map[string]int{"SWEETS": 1, "FRUITS": 4}},
		{Year: 2018, Sex: survey.SexBoys, Overweight: 1, Factors: map[string]int{"SWEETS": 7, "FRUITS": 4}},
		{Year: 2018, Sex: survey.SexGirls, Overweight: 0, Factors: map[string]int{"SWEETS": 1, "FRUITS": 4}},
		{Year: 2018, Sex: survey.SexGirls, Overweight: 1, Factors: map[string]int{"SWEETS": 7, "FRUITS": 4}},
	}
}

func TestRankHandler(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListRecords", mock.Anything, mock.Anything).Return(rankingRecords(), nil)

	h := NewFactorsHandler(ms, survey.DefaultScales(), []string{"SWEETS", "FRUITS"}, testAnalysis())
	req := httptest.NewRequest("GET", "/api/v1/factors/rank?k=5", nil)
	rec := httptest.NewRecorder()
	h.Rank(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp RankResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2018, resp.Year)
	if assert.Len(t, resp.Top, 1) {
		assert.Equal(t, "SWEETS", resp.Top[0].Field)
		assert.Equal(t, "Sweets", resp.Top[0].Alias)
		assert.InDelta(t, 1.0, resp.Top[0].AbsCorrelation, 1e-9)
	}
	assert.Equal(t, []string{"FRUITS"}, resp.Inconclusive)
}

func TestRankHandlerSexFilter(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListRecords", mock.Anything, mock.MatchedBy(func(f store.Filter) bool {
		return f.Sex != nil && *f.Sex == survey.SexGirls
	})).Return(rankingRecords(), nil)

	h := NewFactorsHandler(ms, survey.DefaultScales(), []string{"SWEETS"}, testAnalysis())
	req := httptest.NewRequest("GET", "/api/v1/factors/rank?sex=2", nil)
	rec := httptest.NewRecorder()
	h.Rank(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	ms.AssertExpectations(t)

	req = httptest.NewRequest("GET", "/api/v1/factors/rank?sex=5", nil)
	rec = httptest.NewRecorder()
	h.Rank(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankHandlerAgeRange(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListRecords", mock.Anything, mock.MatchedBy(func(f store.Filter) bool {
		return f.AgeMin != nil && *f.AgeMin == 11 && f.AgeMax != nil && *f.AgeMax == 13
	})).Return(rankingRecords(), nil)

	h := NewFactorsHandler(ms, survey.DefaultScales(), []string{"SWEETS"}, testAnalysis())
	req := httptest.NewRequest("GET", "/api/v1/factors/rank?age_min=11&age_max=13", nil)
	rec := httptest.NewRecorder()
	h.Rank(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	ms.AssertExpectations(t)

	req = httptest.NewRequest("GET", "/api/v1/factors/rank?age_min=eleven", nil)
	rec = httptest.NewRecorder()
	h.Rank(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGapHandlerAgeRange(t *testing.T) {
	records := []survey.Record{
		{Year: 2018, Sex: survey.SexBoys, Age: 11, Overweight: 1, Factors: map[string]int{"SWEETS": 1}},
		{Year: 2018, Sex: survey.SexGirls, Age: 11, Overweight: 1, Factors: map[string]int{"SWEETS": 7}},
	}
	ms := &MockStore{}
	ms.On("ListRecords", mock.Anything, mock.MatchedBy(func(f store.Filter) bool {
		return f.AgeMin != nil && *f.AgeMin == 11 && f.AgeMax == nil
	})).Return(records, nil)

	h := NewFactorsHandler(ms, survey.DefaultScales(), []string{"SWEETS"}, testAnalysis())
	req := httptest.NewRequest("GET", "/api/v1/factors/gap?age_min=11", nil)
	rec := httptest.NewRecorder()
	h.Gap(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	ms.AssertExpectations(t)
}

func TestRankHandlerInvalidK(t *testing.T) {
	h := NewFactorsHandler(&MockStore{}, survey.DefaultScales(), survey.DefaultFactors(), testAnalysis())
	req := httptest.NewRequest("GET", "/api/v1/factors/rank?k=zero", nil)
	rec := httptest.NewRecorder()
	h.Rank(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGapHandler(t *testing.T) {
	records := []survey.Record{
		{Year: 2018, Sex: survey.SexBoys, Overweight: 1, Factors: map[string]int{"SWEETS": 1}},
		{Year: 2018, Sex: survey.SexGirls, Overweight: 1, Factors: map[string]int{"SWEETS": 7}},
	}
	ms := &MockStore{}
	ms.On("ListRecords", mock.Anything, mock.MatchedBy(func(f store.Filter) bool {
		return f.OverweightOnly
	})).Return(records, nil)

	h := NewFactorsHandler(ms, survey.DefaultScales(), []string{"SWEETS"}, testAnalysis())
	req := httptest.NewRequest("GET", "/api/v1/factors/gap", nil)
	rec := httptest.NewRecorder()
	h.Gap(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp GapResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	if assert.Len(t, resp.Rows, 1) {
		assert.InDelta(t, 6.0/7.0, resp.Rows[0].Gap, 1e-9)
		assert.Equal(t, "Girls", resp.Rows[0].DominantSide)
	}
}

func TestGapHandlerInsufficientGroups(t *testing.T) {
	records := []survey.Record{
		{Year: 2018, Sex: survey.SexBoys, Overweight: 1, Factors: map[string]int{"SWEETS": 3}},
	}
	ms := &MockStore{}
	ms.On("ListRecords", mock.Anything, mock.Anything).Return(records, nil)

	h := NewFactorsHandler(ms, survey.DefaultScales(), []string{"SWEETS"}, testAnalysis())
	req := httptest.NewRequest("GET", "/api/v1/factors/gap", nil)
	rec := httptest.NewRecorder()
	h.Gap(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp GapResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	assert.Empty(t, resp.Rows)
}

func TestGapHandlerUnknownField(t *testing.T) {
	h := NewFactorsHandler(&MockStore{}, survey.DefaultScales(), survey.DefaultFactors(), testAnalysis())
	req := httptest.NewRequest("GET", "/api/v1/factors/gap?fields=NOT_A_FIELD", nil)
	rec := httptest.NewRecorder()
	h.Gap(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
