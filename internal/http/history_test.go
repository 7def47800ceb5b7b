package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhover/lexhover/internal/entities"
)

func seedHistory(t *testing.T, f *apiFixture, original, translated string) entities.HistoryItem {
	t.Helper()
	item, err := f.history.Add(original, translated, "en", "zh-CN", "stub", "")
	require.NoError(t, err)
	return *item
}

func TestHistoryList(t *testing.T) {
	f := setupAPI(t)
	seedHistory(t, f, "hello", "你好")
	seedHistory(t, f, "world", "世界")

	w := doJSON(t, f.engine, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Items []entities.HistoryItem `json:"items"`
		Count int                    `json:"count"`
	}
	decodeBody(t, w, &listing)
	require.Equal(t, 2, listing.Count)
	// Newest first.
	assert.Equal(t, "world", listing.Items[0].OriginalText)
}

func TestHistoryList_Empty(t *testing.T) {
	f := setupAPI(t)

	w := doJSON(t, f.engine, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestHistorySearch(t *testing.T) {
	f := setupAPI(t)
	seedHistory(t, f, "hello", "你好")
	seedHistory(t, f, "world", "世界")

	w := doJSON(t, f.engine, http.MethodGet, "/api/history?q=wor", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Items []entities.HistoryItem `json:"items"`
		Count int                    `json:"count"`
	}
	decodeBody(t, w, &listing)
	require.Equal(t, 1, listing.Count)
	assert.Equal(t, "world", listing.Items[0].OriginalText)
}

func TestHistoryRemove(t *testing.T) {
	f := setupAPI(t)
	item := seedHistory(t, f, "hello", "你好")

	w := doJSON(t, f.engine, http.MethodDelete, "/api/history/"+item.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	items, err := f.history.Items()
	require.NoError(t, err)
	assert.Empty(t, items)

	// Unknown ids are tolerated.
	w = doJSON(t, f.engine, http.MethodDelete, "/api/history/"+item.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHistoryClear(t *testing.T) {
	f := setupAPI(t)
	seedHistory(t, f, "hello", "你好")
	seedHistory(t, f, "world", "世界")

	w := doJSON(t, f.engine, http.MethodDelete, "/api/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items, err := f.history.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHistoryStats(t *testing.T) {
	f := setupAPI(t)
	seedHistory(t, f, "hello", "你好")

	w := doJSON(t, f.engine, http.MethodGet, "/api/history/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats entities.HistoryStats
	decodeBody(t, w, &stats)
	assert.Equal(t, 1, stats.TotalItems)
	require.NotNil(t, stats.NewestTimestamp)
	assert.NotZero(t, *stats.NewestTimestamp)
}

func TestHistoryConfigRoundTrip(t *testing.T) {
	f := setupAPI(t)

	var cfg entities.HistoryConfig
	w := doJSON(t, f.engine, http.MethodGet, "/api/history/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &cfg)
	assert.Equal(t, 100, cfg.MaxHistoryItems)

	cfg.MaxHistoryItems = 10
	w = doJSON(t, f.engine, http.MethodPut, "/api/history/config", cfg)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := f.history.Config()
	require.NoError(t, err)
	assert.Equal(t, 10, stored.MaxHistoryItems)
}

func TestHistoryConfig_RejectsNonPositiveCap(t *testing.T) {
	f := setupAPI(t)

	cfg := entities.DefaultHistoryConfig()
	cfg.MaxHistoryItems = -1
	w := doJSON(t, f.engine, http.MethodPut, "/api/history/config", cfg)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
