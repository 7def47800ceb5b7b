package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhover/lexhover/internal/entities"
)

func TestHoverConfigRoundTrip(t *testing.T) {
	f := setupAPI(t)

	var cfg entities.HoverConfig
	w := doJSON(t, f.engine, http.MethodGet, "/api/config/hover", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &cfg)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DelayMs)

	cfg.DelayMs = 500
	cfg.AutoCloseDelayMs = 4000
	w = doJSON(t, f.engine, http.MethodPut, "/api/config/hover", cfg)
	require.Equal(t, http.StatusOK, w.Code)

	var stored entities.HoverConfig
	found, err := f.store.Get(entities.KeyHoverConfig, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 500, stored.DelayMs)
	assert.Equal(t, 4000, stored.AutoCloseDelayMs)
}

func TestHoverConfig_RejectsNegativeDelay(t *testing.T) {
	f := setupAPI(t)

	cfg := entities.DefaultHoverConfig()
	cfg.DelayMs = -1
	w := doJSON(t, f.engine, http.MethodPut, "/api/config/hover", cfg)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPhoneticConfigRoundTrip(t *testing.T) {
	f := setupAPI(t)

	var cfg entities.PhoneticConfig
	w := doJSON(t, f.engine, http.MethodGet, "/api/config/phonetic", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &cfg)
	assert.Equal(t, "local", cfg.Provider)

	cfg.Enabled = false
	w = doJSON(t, f.engine, http.MethodPut, "/api/config/phonetic", cfg)
	require.Equal(t, http.StatusOK, w.Code)

	var stored entities.PhoneticConfig
	_, err := f.store.Get(entities.KeyPhoneticConfig, &stored)
	require.NoError(t, err)
	assert.False(t, stored.Enabled)
}

func TestTranslateConfigRoundTrip(t *testing.T) {
	f := setupAPI(t)

	var cfg entities.TranslateConfig
	w := doJSON(t, f.engine, http.MethodGet, "/api/config/translate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &cfg)
	assert.Equal(t, "stub", cfg.Platform)

	cfg.TargetLanguage = "fr"
	w = doJSON(t, f.engine, http.MethodPut, "/api/config/translate", cfg)
	require.Equal(t, http.StatusOK, w.Code)

	var stored entities.TranslateConfig
	_, err := f.store.Get(entities.KeyTranslateConfig, &stored)
	require.NoError(t, err)
	assert.Equal(t, "fr", stored.TargetLanguage)
}

func TestTranslateConfig_RequiresPlatform(t *testing.T) {
	f := setupAPI(t)

	w := doJSON(t, f.engine, http.MethodPut, "/api/config/translate", entities.TranslateConfig{
		SourceLanguage: "auto",
		TargetLanguage: "zh-CN",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLastWord(t *testing.T) {
	f := setupAPI(t)

	w := doJSON(t, f.engine, http.MethodGet, "/api/last-word", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, f.store.Put(entities.KeyLastWord, entities.LastWord{
		Text:      "hello",
		Timestamp: time.Now().UnixMilli(),
	}))

	w = doJSON(t, f.engine, http.MethodGet, "/api/last-word", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var word entities.LastWord
	decodeBody(t, w, &word)
	assert.Equal(t, "hello", word.Text)
}
