package session

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/storage"
)

func setupTestStore(t *testing.T) (*storage.Store, func()) {
	dbPath := "./test_session_" + t.Name() + ".db"

	store, err := storage.Open(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		os.Remove(dbPath)
	}

	return store, cleanup
}

type dispatchRecorder struct {
	mu    sync.Mutex
	texts []string
}

func (r *dispatchRecorder) record(text string, x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
}

func (r *dispatchRecorder) dispatched() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func TestSelectionPipeline_CollapsesRapidEvents(t *testing.T) {
	recorder := &dispatchRecorder{}
	pipeline := NewSelectionPipeline(20*time.Millisecond, recorder.record)
	defer pipeline.Close()

	pipeline.SelectionChanged("h", 1, 1)
	pipeline.SelectionChanged("he", 1, 1)
	pipeline.SelectionChanged("hel", 1, 1)
	pipeline.SelectionChanged("hello", 1, 1)

	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, []string{"hello"}, recorder.dispatched())
}

func TestSelectionPipeline_SetDebounceAppliesToNextEvent(t *testing.T) {
	recorder := &dispatchRecorder{}
	pipeline := NewSelectionPipeline(10*time.Second, recorder.record)
	defer pipeline.Close()

	require.Equal(t, 10*time.Second, pipeline.Debounce())

	pipeline.SetDebounce(10 * time.Millisecond)
	pipeline.SelectionChanged("hello", 1, 1)

	assert.Eventually(t, func() bool {
		return len(recorder.dispatched()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSelectionPipeline_IdenticalSelectionNotRedispatched(t *testing.T) {
	recorder := &dispatchRecorder{}
	pipeline := NewSelectionPipeline(10*time.Millisecond, recorder.record)
	defer pipeline.Close()

	pipeline.SelectionChanged("hello", 1, 1)
	time.Sleep(50 * time.Millisecond)
	pipeline.SelectionChanged("hello", 2, 2)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, []string{"hello"}, recorder.dispatched())
}

func TestSelectionPipeline_EmptySelectionIgnored(t *testing.T) {
	recorder := &dispatchRecorder{}
	pipeline := NewSelectionPipeline(10*time.Millisecond, recorder.record)
	defer pipeline.Close()

	pipeline.SelectionChanged("   ", 1, 1)
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, recorder.dispatched())
}

func TestSelectionPipeline_ResetAllowsRedispatch(t *testing.T) {
	recorder := &dispatchRecorder{}
	pipeline := NewSelectionPipeline(10*time.Millisecond, recorder.record)
	defer pipeline.Close()

	pipeline.SelectionChanged("hello", 1, 1)
	time.Sleep(50 * time.Millisecond)

	pipeline.Reset()
	pipeline.SelectionChanged("hello", 1, 1)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, []string{"hello", "hello"}, recorder.dispatched())
}

func TestSelectionPipeline_CloseCancelsPending(t *testing.T) {
	recorder := &dispatchRecorder{}
	pipeline := NewSelectionPipeline(20*time.Millisecond, recorder.record)

	pipeline.SelectionChanged("hello", 1, 1)
	pipeline.Close()
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, recorder.dispatched())
}

func newTestSession(t *testing.T, store *storage.Store, favorite FavoriteFunc) *HoverSession {
	t.Helper()
	session, err := NewHoverSession(store, favorite)
	require.NoError(t, err)
	t.Cleanup(session.Close)
	return session
}

func TestHoverSession_FirstReadPersistsDefaultConfig(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	session := newTestSession(t, store, nil)

	cfg := session.Config()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DelayMs)

	var stored entities.HoverConfig
	found, err := store.Get(entities.KeyHoverConfig, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cfg, stored)
}

func TestHoverSession_BeginToShowing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	cfg := entities.DefaultHoverConfig()
	cfg.AutoCloseDelayMs = 0
	require.NoError(t, store.Put(entities.KeyHoverConfig, cfg))

	session := newTestSession(t, store, nil)

	require.True(t, session.Begin("hola"))
	assert.Equal(t, StatePending, session.State())

	applied := session.ApplyResult("hola", &entities.TranslateResult{Result: "hello"}, nil, nil)
	assert.True(t, applied)
	assert.Equal(t, StateShowing, session.State())
	assert.Equal(t, "hello", session.CurrentView().Translation.Result)
}

func TestHoverSession_DisabledRoutesToPanel(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	cfg := entities.DefaultHoverConfig()
	cfg.Enabled = false
	require.NoError(t, store.Put(entities.KeyHoverConfig, cfg))

	session := newTestSession(t, store, nil)

	assert.False(t, session.Begin("hola"))
	assert.Equal(t, StateIdle, session.State())
}

func TestHoverSession_PanelSuppression(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	session := newTestSession(t, store, nil)

	session.PanelOpened()
	assert.True(t, session.PanelActive())
	assert.False(t, session.Begin("hola"))

	session.ResetPanel()
	assert.False(t, session.PanelActive())
	assert.True(t, session.Begin("hola"))
}

func TestHoverSession_StaleResponseDiscarded(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	cfg := entities.DefaultHoverConfig()
	cfg.AutoCloseDelayMs = 0
	require.NoError(t, store.Put(entities.KeyHoverConfig, cfg))

	session := newTestSession(t, store, nil)

	require.True(t, session.Begin("first"))
	require.True(t, session.Begin("second"))

	// The late response for the superseded selection must not apply.
	assert.False(t, session.ApplyResult("first", &entities.TranslateResult{Result: "stale"}, nil, nil))
	assert.Equal(t, StatePending, session.State())

	assert.True(t, session.ApplyResult("second", &entities.TranslateResult{Result: "fresh"}, nil, nil))
	assert.Equal(t, "fresh", session.CurrentView().Translation.Result)
}

func TestHoverSession_FailureIsVisible(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	cfg := entities.DefaultHoverConfig()
	cfg.AutoCloseDelayMs = 0
	require.NoError(t, store.Put(entities.KeyHoverConfig, cfg))

	session := newTestSession(t, store, nil)

	require.True(t, session.Begin("hola"))
	require.True(t, session.ApplyResult("hola", nil, nil, errors.New("platform down")))

	assert.Equal(t, StateShowing, session.State())
	view := session.CurrentView()
	assert.Nil(t, view.Translation)
	assert.EqualError(t, view.Err, "platform down")
}

func TestHoverSession_AutoClose(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	cfg := entities.DefaultHoverConfig()
	cfg.AutoCloseDelayMs = 20
	require.NoError(t, store.Put(entities.KeyHoverConfig, cfg))

	session := newTestSession(t, store, nil)

	require.True(t, session.Begin("hola"))
	require.True(t, session.ApplyResult("hola", &entities.TranslateResult{Result: "hello"}, nil, nil))

	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, StateIdle, session.State())
	assert.Empty(t, session.CurrentView().OriginalText)
}

func TestHoverSession_ZeroAutoCloseDisablesTimer(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	cfg := entities.DefaultHoverConfig()
	cfg.AutoCloseDelayMs = 0
	require.NoError(t, store.Put(entities.KeyHoverConfig, cfg))

	session := newTestSession(t, store, nil)

	require.True(t, session.Begin("hola"))
	require.True(t, session.ApplyResult("hola", &entities.TranslateResult{Result: "hello"}, nil, nil))

	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, StateShowing, session.State())
}

func TestHoverSession_DismissCancelsAutoClose(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	session := newTestSession(t, store, nil)

	require.True(t, session.Begin("hola"))
	require.True(t, session.ApplyResult("hola", &entities.TranslateResult{Result: "hello"}, nil, nil))

	session.Dismiss()
	assert.Equal(t, StateIdle, session.State())
}

func TestHoverSession_Favorite(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	cfg := entities.DefaultHoverConfig()
	cfg.AutoCloseDelayMs = 0
	require.NoError(t, store.Put(entities.KeyHoverConfig, cfg))

	type pair struct{ original, translated string }
	saved := make(chan pair, 1)
	session := newTestSession(t, store, func(originalText, translatedText string) {
		saved <- pair{originalText, translatedText}
	})

	// Nothing showing yet.
	assert.False(t, session.Favorite())

	require.True(t, session.Begin("hola"))
	require.True(t, session.ApplyResult("hola", &entities.TranslateResult{Result: "hello"}, nil, nil))
	require.True(t, session.Favorite())

	select {
	case got := <-saved:
		assert.Equal(t, pair{"hola", "hello"}, got)
	case <-time.After(time.Second):
		t.Fatal("favorite hook never ran")
	}

	// Favoriting does not alter the state machine.
	assert.Equal(t, StateShowing, session.State())
}

func TestHoverSession_ConfigTracksStorageChanges(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	session := newTestSession(t, store, nil)
	require.True(t, session.Config().Enabled)

	updated := entities.DefaultHoverConfig()
	updated.Enabled = false
	require.NoError(t, store.Put(entities.KeyHoverConfig, updated))

	assert.False(t, session.Config().Enabled)
	assert.False(t, session.Begin("hola"))
}
