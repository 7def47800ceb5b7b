// Package collections implements the capped, ordered, deduplicated
// persistent collections (translation history and vocabulary) on top of
// the key/value storage layer.
//
// The daemon is the single owning context for durable storage, so every
// read-modify-write sequence is serialized behind the collection's mutex.
package collections

import (
	"strings"
	"sync"
	"time"

	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/storage"
)

// History manages the translation history collection.
type History struct {
	store *storage.Store
	mu    sync.Mutex
}

// NewHistory creates a history collection over the given store.
func NewHistory(store *storage.Store) *History {
	return &History{store: store}
}

// Config reads the durable history config, writing and returning the
// built-in default if none exists yet.
func (h *History) Config() (entities.HistoryConfig, error) {
	var cfg entities.HistoryConfig
	found, err := h.store.Get(entities.KeyHistoryConfig, &cfg)
	if err != nil {
		return entities.HistoryConfig{}, err
	}
	if !found {
		cfg = entities.DefaultHistoryConfig()
		if err := h.store.Put(entities.KeyHistoryConfig, cfg); err != nil {
			return entities.HistoryConfig{}, err
		}
	}
	return cfg, nil
}

// SetConfig replaces the durable history config.
func (h *History) SetConfig(cfg entities.HistoryConfig) error {
	return h.store.Put(entities.KeyHistoryConfig, cfg)
}

// Items returns all history items, newest first.
func (h *History) Items() ([]entities.HistoryItem, error) {
	var items []entities.HistoryItem
	if _, err := h.store.Get(entities.KeyHistoryItems, &items); err != nil {
		return nil, err
	}
	sortNewestFirst(items, func(it entities.HistoryItem) int64 { return it.Timestamp })
	return items, nil
}

// Add records a successful translation. Returns ErrFeatureDisabled when
// history is off and ErrEmptyContent for blank text; neither touches
// storage.
func (h *History) Add(originalText, translatedText, sourceLanguage, targetLanguage, platform, additionalInfo string) (*entities.HistoryItem, error) {
	cfg, err := h.Config()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ErrFeatureDisabled
	}
	if strings.TrimSpace(originalText) == "" || strings.TrimSpace(translatedText) == "" {
		return nil, ErrEmptyContent
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.Items()
	if err != nil {
		return nil, err
	}

	id, err := newItemID()
	if err != nil {
		return nil, err
	}

	item := entities.HistoryItem{
		ID:             id,
		OriginalText:   originalText,
		TranslatedText: translatedText,
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
		Platform:       platform,
		Timestamp:      time.Now().UnixMilli(),
		AdditionalInfo: additionalInfo,
	}

	items = append([]entities.HistoryItem{item}, items...)
	items = capItems(items, cfg.MaxHistoryItems)

	if err := h.store.Put(entities.KeyHistoryItems, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Remove deletes a single item by id. Removing an unknown id is a no-op.
func (h *History) Remove(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.Items()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return h.store.Put(entities.KeyHistoryItems, kept)
}

// Clear removes all history items.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Put(entities.KeyHistoryItems, []entities.HistoryItem{})
}

// Search returns items whose original or translated text contains the
// query, case-insensitively. An empty query returns the full list.
func (h *History) Search(query string) ([]entities.HistoryItem, error) {
	items, err := h.Items()
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items, nil
	}

	var matched []entities.HistoryItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.OriginalText), query) ||
			strings.Contains(strings.ToLower(item.TranslatedText), query) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Stats computes aggregate history counts on demand.
func (h *History) Stats() (entities.HistoryStats, error) {
	items, err := h.Items()
	if err != nil {
		return entities.HistoryStats{}, err
	}
	stats := entities.HistoryStats{TotalItems: len(items)}
	if len(items) == 0 {
		return stats, nil
	}

	// Items are newest-first.
	newest := items[0].Timestamp
	oldest := items[len(items)-1].Timestamp
	stats.NewestTimestamp = &newest
	stats.OldestTimestamp = &oldest
	return stats, nil
}
