package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/storage"
)

// State is the hover session state.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateShowing State = "showing"
)

// panelActiveWindow suppresses hover sessions after the side panel
// reports it has opened.
const panelActiveWindow = 30 * time.Second

// View is what the hover overlay currently displays. Err set with a nil
// Translation means the overlay shows a visible error state.
type View struct {
	OriginalText string
	Translation  *entities.TranslateResult
	Phonetic     *entities.PhoneticInfo
	Err          error
}

// ConfigSource is the slice of the storage contract the session needs:
// config reads plus the change feed that keeps the config live.
type ConfigSource interface {
	Get(key string, dest any) (bool, error)
	Put(key string, value any) error
	Subscribe(fn storage.Subscriber) func()
}

// FavoriteFunc persists the displayed pair into the vocabulary. It runs
// on its own goroutine and must not assume session state.
type FavoriteFunc func(originalText, translatedText string)

// HoverSession is the Idle -> Pending -> Showing -> Idle state machine
// behind the transient hover overlay. It owns the auto-close timer and
// the side-panel suppression window, and tracks live hover config via
// the storage change feed.
type HoverSession struct {
	mu               sync.Mutex
	state            State
	view             View
	config           entities.HoverConfig
	panelActiveUntil time.Time
	autoClose        *time.Timer
	favorite         FavoriteFunc
	unsubscribe      func()
}

// NewHoverSession creates an idle session. The stored hover config is
// loaded once (persisting the default on first read) and then tracked
// through the change feed.
func NewHoverSession(source ConfigSource, favorite FavoriteFunc) (*HoverSession, error) {
	cfg := entities.DefaultHoverConfig()
	found, err := source.Get(entities.KeyHoverConfig, &cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := source.Put(entities.KeyHoverConfig, cfg); err != nil {
			return nil, err
		}
	}

	s := &HoverSession{
		state:    StateIdle,
		config:   cfg,
		favorite: favorite,
	}
	s.unsubscribe = source.Subscribe(func(change storage.Change) {
		if change.Key != entities.KeyHoverConfig || change.NewValue == nil {
			return
		}
		var updated entities.HoverConfig
		if err := json.Unmarshal(change.NewValue, &updated); err != nil {
			return
		}
		s.mu.Lock()
		s.config = updated
		s.mu.Unlock()
	})
	return s, nil
}

// Config returns the session's current hover config.
func (s *HoverSession) Config() entities.HoverConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// State returns the current state.
func (s *HoverSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentView returns a copy of what the overlay displays.
func (s *HoverSession) CurrentView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// PanelActive reports whether the side-panel suppression window is open.
func (s *HoverSession) PanelActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panelActive()
}

func (s *HoverSession) panelActive() bool {
	return time.Now().Before(s.panelActiveUntil)
}

// Begin handles a stable selection. Any showing session closes first; the
// session then moves to Pending unless hover is disabled or the side
// panel is active, in which case Begin reports false and the caller
// routes the text to the side panel instead.
func (s *HoverSession) Begin(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A new stable selection is an explicit close for whatever is shown.
	s.resetLocked()

	if !s.config.Enabled || s.panelActive() {
		return false
	}

	s.state = StatePending
	s.view = View{OriginalText: text}
	return true
}

// ApplyResult delivers a translation outcome for the selection echoed in
// originalText. Responses for anything other than the currently pending
// selection are discarded, which is the stale-response guard. A failed
// translation still transitions to Showing with the error visible.
func (s *HoverSession) ApplyResult(originalText string, tr *entities.TranslateResult, ph *entities.PhoneticInfo, translateErr error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePending || s.view.OriginalText != originalText {
		return false
	}

	s.state = StateShowing
	s.view.Translation = tr
	s.view.Phonetic = ph
	s.view.Err = translateErr

	if delay := s.config.AutoCloseDelayMs; delay > 0 {
		s.autoClose = time.AfterFunc(time.Duration(delay)*time.Millisecond, func() {
			s.autoCloseFired(originalText)
		})
	}
	return true
}

func (s *HoverSession) autoCloseFired(originalText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The timer may race a newer session; only close our own.
	if s.state == StateShowing && s.view.OriginalText == originalText {
		s.resetLocked()
	}
}

// Dismiss is an explicit close action: click, scroll, outside click.
func (s *HoverSession) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *HoverSession) resetLocked() {
	if s.autoClose != nil {
		s.autoClose.Stop()
		s.autoClose = nil
	}
	s.state = StateIdle
	s.view = View{}
}

// PanelOpened starts the side-panel suppression window.
func (s *HoverSession) PanelOpened() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelActiveUntil = time.Now().Add(panelActiveWindow)
}

// ResetPanel clears the suppression window before it expires.
func (s *HoverSession) ResetPanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelActiveUntil = time.Time{}
}

// Favorite saves the currently displayed pair into the vocabulary on its
// own goroutine. It reports whether there was a displayed translation to
// save; the state machine itself is untouched either way.
func (s *HoverSession) Favorite() bool {
	s.mu.Lock()
	if s.state != StateShowing || s.view.Translation == nil || s.favorite == nil {
		s.mu.Unlock()
		return false
	}
	original := s.view.OriginalText
	translated := s.view.Translation.Result
	fn := s.favorite
	s.mu.Unlock()

	go fn(original, translated)
	return true
}

// Close tears the session down: the config subscription is removed and
// any pending auto-close timer stopped.
func (s *HoverSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
