// Package router dispatches cross-context messages: an action tag plus a
// JSON payload in, a response map out. Contexts never share memory; every
// interaction between the page surface, the side panel, and the
// coordinator goes through here.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Accepted action tags.
const (
	ActionLastSelectionText    = "LAST_SELECTION_TEXT"
	ActionTranslateHover       = "TRANSLATE_HOVER"
	ActionAddToVocabulary      = "ADD_TO_VOCABULARY"
	ActionUpdateHoverConfig    = "UPDATE_HOVER_CONFIG"
	ActionSidePanelOpen        = "SIDE_PANEL_OPEN"
	ActionTranslateHoverResult = "TRANSLATE_HOVER_RESULT"
)

// Message is one routed message. ID correlates async responses and
// broadcasts; senders may omit it.
type Message struct {
	ID      string          `json:"id,omitempty"`
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage builds an outbound message with a fresh ID.
func NewMessage(action string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode payload for %s: %w", action, err)
	}
	return Message{
		ID:      uuid.NewString(),
		Action:  action,
		Payload: raw,
	}, nil
}

// Response is the reply to one dispatched message. Extra contains
// action-specific fields merged into the JSON object next to success.
type Response map[string]any

// Handler processes one message. The returned map is merged into the
// success response; a handler doing async work simply does not return
// until the work is done, which keeps the response channel open.
type Handler func(ctx context.Context, msg Message) (Response, error)

// Router maps action tags to handlers and fans broadcasts out to every
// connected surface.
type Router struct {
	mu         sync.RWMutex
	handlers   map[string]Handler
	listeners  map[int]chan Message
	nextListID int
}

// New creates an empty router.
func New() *Router {
	return &Router{
		handlers:  map[string]Handler{},
		listeners: map[int]chan Message{},
	}
}

// Handle registers a handler for an action, replacing any previous one.
func (r *Router) Handle(action string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[action] = h
}

// Dispatch routes one message and returns its response. Unrecognized
// actions are acknowledged with a generic success rather than an error.
func (r *Router) Dispatch(ctx context.Context, msg Message) Response {
	r.mu.RLock()
	handler, ok := r.handlers[msg.Action]
	r.mu.RUnlock()

	if !ok {
		log.Printf("[ROUTER] unrecognized action %q acknowledged", msg.Action)
		return r.respond(msg, nil, nil)
	}

	extra, err := handler(ctx, msg)
	return r.respond(msg, extra, err)
}

func (r *Router) respond(msg Message, extra Response, err error) Response {
	resp := Response{"success": err == nil}
	if msg.ID != "" {
		resp["id"] = msg.ID
	}
	if err != nil {
		resp["error"] = err.Error()
		return resp
	}
	for k, v := range extra {
		resp[k] = v
	}
	return resp
}

// Broadcast delivers a coordinator-originated message to every connected
// surface. Surfaces that cannot keep up lose messages rather than block
// the coordinator.
func (r *Router) Broadcast(msg Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ch := range r.listeners {
		select {
		case ch <- msg:
		default:
			log.Printf("[ROUTER] dropped broadcast %s for a slow surface", msg.Action)
		}
	}
}

// ListenerCount reports how many surfaces are currently attached.
func (r *Router) ListenerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// Listen registers a surface for broadcasts. The returned func detaches
// the surface and closes its channel.
func (r *Router) Listen() (<-chan Message, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextListID
	r.nextListID++
	ch := make(chan Message, 16)
	r.listeners[id] = ch

	return ch, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.listeners[id]; ok {
			delete(r.listeners, id)
			close(ch)
		}
	}
}
