package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/coordinator"
	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/phonetic"
	"github.com/lexhover/lexhover/internal/providers"
	"github.com/lexhover/lexhover/internal/router"
	"github.com/lexhover/lexhover/internal/storage"
)

type stubPlatform struct {
	result *entities.TranslateResult
	err    error
}

func (s *stubPlatform) Code() string                          { return "stub" }
func (s *stubPlatform) Name() string                          { return "Stub" }
func (s *stubPlatform) Languages() []providers.Language       { return nil }
func (s *stubPlatform) ConfigSchema() []providers.ConfigField { return nil }

func (s *stubPlatform) Config(ctx context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func (s *stubPlatform) CheckPlatform(ctx context.Context) bool { return s.err == nil }

func (s *stubPlatform) Translate(ctx context.Context, text, source, target string) (*entities.TranslateResult, error) {
	return s.result, s.err
}

type stubEnqueuer struct {
	mu     sync.Mutex
	single []string
	sweeps int
}

func (s *stubEnqueuer) EnqueuePhoneticEnrichment(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.single = append(s.single, itemID)
	return nil
}

func (s *stubEnqueuer) EnqueueAllMissingPhonetics() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweeps++
	return nil
}

type stubSweeper struct {
	mu   sync.Mutex
	runs int
}

func (s *stubSweeper) RunNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
}

type apiFixture struct {
	engine     *gin.Engine
	store      *storage.Store
	platform   *stubPlatform
	history    *collections.History
	vocabulary *collections.Vocabulary
	enqueuer   *stubEnqueuer
	sweeper    *stubSweeper
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	store, err := storage.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
		os.Remove(dbPath)
	})

	require.NoError(t, store.Put(entities.KeyTranslateConfig, entities.TranslateConfig{
		Platform:       "stub",
		SourceLanguage: "en",
		TargetLanguage: "zh-CN",
	}))
	phoneticCfg := entities.DefaultPhoneticConfig()
	phoneticCfg.Provider = "local"
	require.NoError(t, store.Put(entities.KeyPhoneticConfig, phoneticCfg))

	platform := &stubPlatform{result: &entities.TranslateResult{Result: "你好", DetectedLanguage: "en"}}
	registry := providers.NewRegistry(store)
	registry.Register(platform)

	rt := router.New()
	history := collections.NewHistory(store)
	vocabulary := collections.NewVocabulary(store)
	enqueuer := &stubEnqueuer{}
	sweeper := &stubSweeper{}

	coord, err := coordinator.New(store, registry, history, vocabulary, phonetic.NewService(store), rt, enqueuer)
	require.NoError(t, err)
	t.Cleanup(coord.Close)

	engine := NewRouter(RouterConfig{
		Store:         store,
		Registry:      registry,
		History:       history,
		Vocabulary:    vocabulary,
		MessageRouter: rt,
		Hover:         coord.Hover(),
		Selection:     coord.Selection(),
		TaskClient:    enqueuer,
		Sweeper:       sweeper,
		Version:       "test",
	})

	return &apiFixture{
		engine:     engine,
		store:      store,
		platform:   platform,
		history:    history,
		vocabulary: vocabulary,
		enqueuer:   enqueuer,
		sweeper:    sweeper,
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
