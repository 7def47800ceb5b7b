// Package session holds the per-context interaction state: the debounced
// selection pipeline and the hover state machine. Both are explicit
// objects with constructor-injected dependencies and an owned lifecycle,
// never ambient globals.
package session

import (
	"strings"
	"sync"
	"time"
)

// Dispatch receives exactly one stable selection per quiet period,
// together with the triggering pointer coordinates.
type Dispatch func(text string, x, y int)

// SelectionPipeline collapses rapid selection-change events into a single
// dispatch once the selection has been quiet for the debounce period.
// Re-selecting the same text dispatches nothing.
type SelectionPipeline struct {
	mu             sync.Mutex
	debounce       time.Duration
	dispatch       Dispatch
	timer          *time.Timer
	lastStableText string
	closed         bool
}

// NewSelectionPipeline creates a pipeline dispatching through fn.
func NewSelectionPipeline(debounce time.Duration, fn Dispatch) *SelectionPipeline {
	return &SelectionPipeline{
		debounce: debounce,
		dispatch: fn,
	}
}

// SetDebounce updates the quiet period for subsequent events. An already
// pending timer keeps the period it was started with.
func (p *SelectionPipeline) SetDebounce(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.debounce = d
}

// Debounce returns the current quiet period.
func (p *SelectionPipeline) Debounce() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.debounce
}

// SelectionChanged records a raw selection-change event. Any pending
// debounce timer is replaced, so the last event within a quiet period
// wins.
func (p *SelectionPipeline) SelectionChanged(text string, x, y int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	candidate := strings.TrimSpace(text)
	p.timer = time.AfterFunc(p.debounce, func() {
		p.fire(candidate, x, y)
	})
}

func (p *SelectionPipeline) fire(text string, x, y int) {
	p.mu.Lock()
	if p.closed || text == "" || text == p.lastStableText {
		p.mu.Unlock()
		return
	}
	p.lastStableText = text
	dispatch := p.dispatch
	p.mu.Unlock()

	dispatch(text, x, y)
}

// LastStableText returns the most recently dispatched selection.
func (p *SelectionPipeline) LastStableText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastStableText
}

// Reset forgets the last stable text so the same selection can dispatch
// again, e.g. after the surface showing it was closed.
func (p *SelectionPipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastStableText = ""
}

// Close cancels any pending timer and stops all future dispatches.
func (p *SelectionPipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
