package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/pkg/log"
)

type fakeStore struct {
	snapshots []model.TrendingSnapshot
	lastQuery model.Query
	failRead  bool
}

func (f *fakeStore) Upsert(ctx context.Context, snapshot model.TrendingSnapshot) error {
	return nil
}

func (f *fakeStore) Read(ctx context.Context, query model.Query) ([]model.TrendingSnapshot, error) {
	if f.failRead {
		return nil, errors.New("backend unavailable")
	}
	f.lastQuery = query
	result := make([]model.TrendingSnapshot, 0)
	for _, s := range f.snapshots {
		if query.Matches(s) {
			result = append(result, s)
		}
	}
	return result, nil
}

func newTestHandler(t *testing.T, st *fakeStore) *Handler {
	loader, _ := cfg.NewMockLoader()
	config, err := loader.Load()
	require.NoError(t, err)

	logger, _ := log.NewCslLogger()
	h, err := NewHandler(logger, config, st)
	require.NoError(t, err)
	return h
}

func get(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.handleTrending(rec, req)
	return rec
}

func testSnapshots() []model.TrendingSnapshot {
	return []model.TrendingSnapshot{
		{Language: "go", Type: model.TypeRepositories, Since: model.SinceDaily, Month: "2024-05", Day: "2024-05-01"},
		{Language: "rust", Type: model.TypeRepositories, Since: model.SinceDaily, Month: "2024-05", Day: "2024-05-01"},
		{Language: "go", Type: model.TypeRepositories, Since: model.SinceDaily, Month: "2024-05", Day: "2024-05-02"},
	}
}

func TestHandleTrending_FlatList(t *testing.T) {
	h := newTestHandler(t, &fakeStore{snapshots: testSnapshots()})
	rec := get(t, h, "/api/trending")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

	var response TrendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Data, 3)
	assert.Empty(t, response.GroupedBy)
	assert.Nil(t, response.Groups)
}

func TestHandleTrending_FiltersConjunctively(t *testing.T) {
	st := &fakeStore{snapshots: testSnapshots()}
	h := newTestHandler(t, st)

	rec := get(t, h, "/api/trending?language=go&day=2024-05-01")
	require.Equal(t, http.StatusOK, rec.Code)

	var response TrendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "go", response.Data[0].Language)
	assert.Equal(t, "2024-05-01", response.Data[0].Day)
	assert.Equal(t, model.Query{Language: "go", Day: "2024-05-01"}, st.lastQuery)
}

func TestHandleTrending_InvalidEnumParamsIgnored(t *testing.T) {
	st := &fakeStore{snapshots: testSnapshots()}
	h := newTestHandler(t, st)

	rec := get(t, h, "/api/trending?type=orgs&since=yearly")
	require.Equal(t, http.StatusOK, rec.Code)

	// Invalid values behave as if absent
	assert.Equal(t, model.Query{}, st.lastQuery)
}

func TestHandleTrending_GroupByDay(t *testing.T) {
	h := newTestHandler(t, &fakeStore{snapshots: testSnapshots()})
	rec := get(t, h, "/api/trending?groupBy=day")

	require.Equal(t, http.StatusOK, rec.Code)

	var response TrendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "day", response.GroupedBy)
	require.Len(t, response.Groups, 2)
	assert.Len(t, response.Groups["2024-05-01"], 2)
	assert.Len(t, response.Groups["2024-05-02"], 1)

	// Flat list is always present alongside the grouping
	assert.Len(t, response.Data, 3)
}

func TestHandleTrending_UnknownGroupByIgnored(t *testing.T) {
	h := newTestHandler(t, &fakeStore{snapshots: testSnapshots()})
	rec := get(t, h, "/api/trending?groupBy=language")

	require.Equal(t, http.StatusOK, rec.Code)

	var response TrendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Empty(t, response.GroupedBy)
	assert.Nil(t, response.Groups)
}

func TestHandleTrending_StoreFailure(t *testing.T) {
	h := newTestHandler(t, &fakeStore{failRead: true})
	rec := get(t, h, "/api/trending")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to load trending repositories", body["error"])
	assert.NotContains(t, rec.Body.String(), "backend unavailable")
}

func TestHandleTrending_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, &fakeStore{})
	req := httptest.NewRequest(http.MethodPost, "/api/trending", nil)
	rec := httptest.NewRecorder()
	h.handleTrending(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
