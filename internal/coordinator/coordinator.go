// Package coordinator wires the message router to the domain services:
// translations, collections, phonetics and the hover session. It is the
// single owning context for all storage writes triggered by surfaces.
package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/phonetic"
	"github.com/lexhover/lexhover/internal/providers"
	"github.com/lexhover/lexhover/internal/router"
	"github.com/lexhover/lexhover/internal/session"
	"github.com/lexhover/lexhover/internal/storage"
)

// PhoneticEnqueuer queues background phonetic enrichment for a
// vocabulary item. A nil enqueuer disables background enrichment.
type PhoneticEnqueuer interface {
	EnqueuePhoneticEnrichment(itemID string) error
}

// Coordinator owns the hover session and binds every accepted router
// action to its handler.
type Coordinator struct {
	store      *storage.Store
	registry   *providers.Registry
	history    *collections.History
	vocabulary *collections.Vocabulary
	phonetics  *phonetic.Service
	hover       *session.HoverSession
	selection   *session.SelectionPipeline
	router      *router.Router
	enqueuer    PhoneticEnqueuer
	unsubscribe func()
}

// New creates the coordinator, its hover session, and registers all
// action handlers on the router.
func New(
	store *storage.Store,
	registry *providers.Registry,
	history *collections.History,
	vocabulary *collections.Vocabulary,
	phonetics *phonetic.Service,
	rt *router.Router,
	enqueuer PhoneticEnqueuer,
) (*Coordinator, error) {
	c := &Coordinator{
		store:      store,
		registry:   registry,
		history:    history,
		vocabulary: vocabulary,
		phonetics:  phonetics,
		router:     rt,
		enqueuer:   enqueuer,
	}

	hover, err := session.NewHoverSession(store, c.favoriteDisplayed)
	if err != nil {
		return nil, err
	}
	c.hover = hover
	c.selection = session.NewSelectionPipeline(
		time.Duration(hover.Config().DelayMs)*time.Millisecond,
		c.selectionStable,
	)
	// The hover session tracks config changes itself; the pipeline's
	// quiet period follows the same feed.
	c.unsubscribe = store.Subscribe(func(change storage.Change) {
		if change.Key != entities.KeyHoverConfig || change.NewValue == nil {
			return
		}
		var updated entities.HoverConfig
		if err := json.Unmarshal(change.NewValue, &updated); err != nil {
			return
		}
		c.selection.SetDebounce(time.Duration(updated.DelayMs) * time.Millisecond)
	})

	rt.Handle(router.ActionLastSelectionText, c.handleLastSelectionText)
	rt.Handle(router.ActionTranslateHover, c.handleTranslateHover)
	rt.Handle(router.ActionAddToVocabulary, c.handleAddToVocabulary)
	rt.Handle(router.ActionUpdateHoverConfig, c.handleUpdateHoverConfig)
	rt.Handle(router.ActionSidePanelOpen, c.handleSidePanelOpen)

	return c, nil
}

// Hover exposes the session for the HTTP surface.
func (c *Coordinator) Hover() *session.HoverSession {
	return c.hover
}

// Selection exposes the debounced selection pipeline.
func (c *Coordinator) Selection() *session.SelectionPipeline {
	return c.selection
}

// Close tears down the selection pipeline and the hover session.
func (c *Coordinator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.selection.Close()
	c.hover.Close()
}

// selectionStable receives each debounced stable selection and runs it
// through the normal message path: the last word is recorded and the
// translation is requested as if the surface had sent TRANSLATE_HOVER.
func (c *Coordinator) selectionStable(text string, x, y int) {
	word := entities.LastWord{Text: text, Timestamp: time.Now().UnixMilli()}
	if err := c.store.Put(entities.KeyLastWord, word); err != nil {
		log.Printf("[COORDINATOR] persist last word: %v", err)
	}

	msg, err := router.NewMessage(router.ActionTranslateHover, map[string]string{"text": text})
	if err != nil {
		log.Printf("[COORDINATOR] selection dispatch: %v", err)
		return
	}
	resp := c.router.Dispatch(context.Background(), msg)
	if ok, _ := resp["success"].(bool); !ok {
		log.Printf("[COORDINATOR] translate stable selection %q: %v", text, resp["error"])
	}
}

func (c *Coordinator) handleLastSelectionText(ctx context.Context, msg router.Message) (router.Response, error) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	word := entities.LastWord{Text: payload.Text, Timestamp: time.Now().UnixMilli()}
	if err := c.store.Put(entities.KeyLastWord, word); err != nil {
		// Fire-and-forget: persistence failure must not fail the surface.
		log.Printf("[COORDINATOR] persist last word: %v", err)
	}
	return nil, nil
}

func (c *Coordinator) handleTranslateHover(ctx context.Context, msg router.Message) (router.Response, error) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if payload.Text == "" {
		return nil, collections.ErrEmptyContent
	}

	cfg, err := c.registry.TranslateConfig()
	if err != nil {
		return nil, err
	}

	// When the hover overlay cannot take the selection (disabled config
	// or an active side panel) the result goes to the panel instead.
	hoverHandled := c.hover.Begin(payload.Text)

	phoneticCh := make(chan *entities.PhoneticInfo, 1)
	go func() {
		info, err := c.phonetics.Lookup(ctx, payload.Text, cfg.SourceLanguage)
		if err != nil {
			log.Printf("[COORDINATOR] phonetic lookup: %v", err)
			info = nil
		}
		phoneticCh <- info
	}()

	result, translateErr := c.registry.Translate(ctx, cfg.Platform, payload.Text, cfg.SourceLanguage, cfg.TargetLanguage)
	ph := <-phoneticCh

	if hoverHandled {
		c.hover.ApplyResult(payload.Text, result, ph, translateErr)
	}

	if translateErr != nil {
		return nil, translateErr
	}

	if !hoverHandled {
		c.broadcastHoverResult(payload.Text, result, ph)
	}

	if _, err := c.history.Add(payload.Text, result.Result, cfg.SourceLanguage, cfg.TargetLanguage, cfg.Platform, result.Additional); err != nil {
		if err != collections.ErrFeatureDisabled {
			log.Printf("[COORDINATOR] record history: %v", err)
		}
	}

	resp := router.Response{"translation": result}
	if ph != nil {
		resp["phonetic"] = ph
	}
	return resp, nil
}

func (c *Coordinator) broadcastHoverResult(text string, result *entities.TranslateResult, ph *entities.PhoneticInfo) {
	msg, err := router.NewMessage(router.ActionTranslateHoverResult, map[string]any{
		"text":        text,
		"translation": result,
		"phonetic":    ph,
	})
	if err != nil {
		log.Printf("[COORDINATOR] broadcast hover result: %v", err)
		return
	}
	c.router.Broadcast(msg)
}

func (c *Coordinator) handleAddToVocabulary(ctx context.Context, msg router.Message) (router.Response, error) {
	var payload struct {
		OriginalText   string   `json:"originalText"`
		TranslatedText string   `json:"translatedText"`
		SourceLanguage string   `json:"sourceLanguage"`
		TargetLanguage string   `json:"targetLanguage"`
		Tags           []string `json:"tags"`
		Notes          string   `json:"notes"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	cfg, err := c.registry.TranslateConfig()
	if err != nil {
		return nil, err
	}
	if payload.SourceLanguage == "" {
		payload.SourceLanguage = cfg.SourceLanguage
	}
	if payload.TargetLanguage == "" {
		payload.TargetLanguage = cfg.TargetLanguage
	}

	item, err := c.vocabulary.Add(collections.AddRequest{
		OriginalText:   payload.OriginalText,
		TranslatedText: payload.TranslatedText,
		SourceLanguage: payload.SourceLanguage,
		TargetLanguage: payload.TargetLanguage,
		Platform:       cfg.Platform,
		Tags:           payload.Tags,
		Notes:          payload.Notes,
	})
	if err != nil {
		return nil, err
	}

	if item.Phonetic == nil && c.enqueuer != nil {
		if err := c.enqueuer.EnqueuePhoneticEnrichment(item.ID); err != nil {
			log.Printf("[COORDINATOR] enqueue phonetic enrichment: %v", err)
		}
	}

	return router.Response{"item": item}, nil
}

func (c *Coordinator) handleUpdateHoverConfig(ctx context.Context, msg router.Message) (router.Response, error) {
	var payload struct {
		Config entities.HoverConfig `json:"config"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	// The hover session picks the new config up through the change feed.
	if err := c.store.Put(entities.KeyHoverConfig, payload.Config); err != nil {
		return nil, err
	}
	return nil, nil
}

func (c *Coordinator) handleSidePanelOpen(ctx context.Context, msg router.Message) (router.Response, error) {
	c.hover.PanelOpened()

	out, err := router.NewMessage(router.ActionSidePanelOpen, map[string]int64{
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		return nil, err
	}
	c.router.Broadcast(out)
	return nil, nil
}

// favoriteDisplayed is the hover session's favorite hook: it saves the
// displayed pair with the configured language pair and queues phonetic
// enrichment like any other vocabulary add.
func (c *Coordinator) favoriteDisplayed(originalText, translatedText string) {
	cfg, err := c.registry.TranslateConfig()
	if err != nil {
		log.Printf("[COORDINATOR] favorite: %v", err)
		return
	}

	item, err := c.vocabulary.Add(collections.AddRequest{
		OriginalText:   originalText,
		TranslatedText: translatedText,
		SourceLanguage: cfg.SourceLanguage,
		TargetLanguage: cfg.TargetLanguage,
		Platform:       cfg.Platform,
	})
	if err != nil {
		log.Printf("[COORDINATOR] favorite %q: %v", originalText, err)
		return
	}

	if item.Phonetic == nil && c.enqueuer != nil {
		if err := c.enqueuer.EnqueuePhoneticEnrichment(item.ID); err != nil {
			log.Printf("[COORDINATOR] enqueue phonetic enrichment: %v", err)
		}
	}
}
