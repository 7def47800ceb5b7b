package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/entities"
)

func addWord(t *testing.T, f *apiFixture, original, translated string) entities.VocabularyItem {
	t.Helper()
	w := doJSON(t, f.engine, http.MethodPost, "/api/vocabulary", addVocabularyRequest{
		OriginalText:   original,
		TranslatedText: translated,
		SourceLanguage: "es",
		TargetLanguage: "en",
		Platform:       "stub",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item entities.VocabularyItem
	decodeBody(t, w, &item)
	return item
}

func TestVocabularyAdd(t *testing.T) {
	f := setupAPI(t)

	item := addWord(t, f, "hola", "hello")

	assert.Len(t, item.ID, 16)
	assert.False(t, item.Favorite)
	assert.Equal(t, 0, item.ReviewCount)
	assert.Equal(t, []string{"new", "important", "difficult"}, item.Tags)

	// Enrichment was queued because the item has no phonetic yet.
	assert.Equal(t, []string{item.ID}, f.enqueuer.single)
}

func TestVocabularyAdd_EmptyContent(t *testing.T) {
	f := setupAPI(t)

	w := doJSON(t, f.engine, http.MethodPost, "/api/vocabulary", addVocabularyRequest{
		OriginalText:   " ",
		TranslatedText: "hello",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "empty_content", resp.Code)
}

func TestVocabularyAdd_Disabled(t *testing.T) {
	f := setupAPI(t)
	cfg := entities.DefaultVocabularyConfig()
	cfg.Enabled = false
	require.NoError(t, f.store.Put(entities.KeyVocabularyConfig, cfg))

	w := doJSON(t, f.engine, http.MethodPost, "/api/vocabulary", addVocabularyRequest{
		OriginalText:   "hola",
		TranslatedText: "hello",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "feature_disabled", resp.Code)
}

func TestVocabularyList_Filters(t *testing.T) {
	f := setupAPI(t)
	addWord(t, f, "hola", "hello")
	second := addWord(t, f, "gato", "cat")

	w := doJSON(t, f.engine, http.MethodPost, "/api/vocabulary/"+second.ID+"/favorite", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Items []entities.VocabularyItem `json:"items"`
		Count int                       `json:"count"`
	}

	w = doJSON(t, f.engine, http.MethodGet, "/api/vocabulary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &listing)
	assert.Equal(t, 2, listing.Count)

	w = doJSON(t, f.engine, http.MethodGet, "/api/vocabulary?q=gato", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &listing)
	require.Equal(t, 1, listing.Count)
	assert.Equal(t, "gato", listing.Items[0].OriginalText)

	w = doJSON(t, f.engine, http.MethodGet, "/api/vocabulary?favorite=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &listing)
	require.Equal(t, 1, listing.Count)
	assert.Equal(t, second.ID, listing.Items[0].ID)
}

func TestVocabularyGet_NotFound(t *testing.T) {
	f := setupAPI(t)

	w := doJSON(t, f.engine, http.MethodGet, "/api/vocabulary/ffffffffffffffff", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVocabularyUpdate(t *testing.T) {
	f := setupAPI(t)
	item := addWord(t, f, "hola", "hello")

	notes := "common greeting"
	w := doJSON(t, f.engine, http.MethodPatch, "/api/vocabulary/"+item.ID, entities.VocabularyUpdate{Notes: &notes})
	require.Equal(t, http.StatusOK, w.Code)

	var updated entities.VocabularyItem
	decodeBody(t, w, &updated)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, item.TranslatedText, updated.TranslatedText)
}

func TestVocabularyReview(t *testing.T) {
	f := setupAPI(t)
	item := addWord(t, f, "hola", "hello")

	w := doJSON(t, f.engine, http.MethodPost, "/api/vocabulary/"+item.ID+"/review", reviewRequest{Difficulty: entities.DifficultyEasy})
	require.Equal(t, http.StatusOK, w.Code)

	var reviewed entities.VocabularyItem
	decodeBody(t, w, &reviewed)
	assert.Equal(t, 1, reviewed.ReviewCount)
	assert.Equal(t, entities.DifficultyEasy, reviewed.Difficulty)
	assert.NotZero(t, reviewed.LastReviewed)
}

func TestVocabularyRemoveAndClear(t *testing.T) {
	f := setupAPI(t)
	item := addWord(t, f, "hola", "hello")
	addWord(t, f, "gato", "cat")

	w := doJSON(t, f.engine, http.MethodDelete, "/api/vocabulary/"+item.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	items, err := f.vocabulary.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)

	w = doJSON(t, f.engine, http.MethodDelete, "/api/vocabulary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items, err = f.vocabulary.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestVocabularyExportCSV(t *testing.T) {
	f := setupAPI(t)
	addWord(t, f, "hola", "hello")

	w := doJSON(t, f.engine, http.MethodGet, "/api/vocabulary/export?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vocabulary-")
	assert.Contains(t, w.Body.String(), "Original Text")
	assert.Contains(t, w.Body.String(), "hola")
}

func TestVocabularyExport_UnknownFormat(t *testing.T) {
	f := setupAPI(t)

	w := doJSON(t, f.engine, http.MethodGet, "/api/vocabulary/export?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVocabularyEnrichAll(t *testing.T) {
	f := setupAPI(t)

	w := doJSON(t, f.engine, http.MethodPost, "/api/vocabulary/enrich-all", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, f.enqueuer.sweeps)
}

func TestVocabularyConfigRoundTrip(t *testing.T) {
	f := setupAPI(t)

	var cfg entities.VocabularyConfig
	w := doJSON(t, f.engine, http.MethodGet, "/api/vocabulary/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &cfg)
	assert.Equal(t, 500, cfg.MaxVocabularyItems)

	cfg.MaxVocabularyItems = 50
	w = doJSON(t, f.engine, http.MethodPut, "/api/vocabulary/config", cfg)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := collections.NewVocabulary(f.store).Config()
	require.NoError(t, err)
	assert.Equal(t, 50, stored.MaxVocabularyItems)
}

func TestVocabularyConfig_RejectsNonPositiveCap(t *testing.T) {
	f := setupAPI(t)

	cfg := entities.DefaultVocabularyConfig()
	cfg.MaxVocabularyItems = 0
	w := doJSON(t, f.engine, http.MethodPut, "/api/vocabulary/config", cfg)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
