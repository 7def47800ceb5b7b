package collections

import (
	"strings"
	"sync"
	"time"

	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/storage"
)

// Vocabulary manages the saved word collection. At most one item exists
// per (originalText, sourceLanguage, targetLanguage) triple.
type Vocabulary struct {
	store *storage.Store
	mu    sync.Mutex
}

// NewVocabulary creates a vocabulary collection over the given store.
func NewVocabulary(store *storage.Store) *Vocabulary {
	return &Vocabulary{store: store}
}

// Config reads the durable vocabulary config, writing and returning the
// built-in default if none exists yet.
func (v *Vocabulary) Config() (entities.VocabularyConfig, error) {
	var cfg entities.VocabularyConfig
	found, err := v.store.Get(entities.KeyVocabularyConfig, &cfg)
	if err != nil {
		return entities.VocabularyConfig{}, err
	}
	if !found {
		cfg = entities.DefaultVocabularyConfig()
		if err := v.store.Put(entities.KeyVocabularyConfig, cfg); err != nil {
			return entities.VocabularyConfig{}, err
		}
	}
	return cfg, nil
}

// SetConfig replaces the durable vocabulary config.
func (v *Vocabulary) SetConfig(cfg entities.VocabularyConfig) error {
	return v.store.Put(entities.KeyVocabularyConfig, cfg)
}

// Items returns all vocabulary items, newest first.
func (v *Vocabulary) Items() ([]entities.VocabularyItem, error) {
	var items []entities.VocabularyItem
	if _, err := v.store.Get(entities.KeyVocabularyItems, &items); err != nil {
		return nil, err
	}
	sortNewestFirst(items, func(it entities.VocabularyItem) int64 { return it.Timestamp })
	return items, nil
}

// AddRequest carries the fields for adding (or re-adding) a word pair.
// Tags and Notes are optional; nil Tags falls back to the existing item's
// tags or the config defaults.
type AddRequest struct {
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string
	Platform       string
	Phonetic       *entities.PhoneticInfo
	Tags           []string
	Notes          string
}

// Add inserts a new item or, when the uniqueness triple already exists,
// merges into the existing item in place, preserving its id, favorite
// flag and review count while refreshing translation, platform and
// timestamp.
func (v *Vocabulary) Add(req AddRequest) (*entities.VocabularyItem, error) {
	cfg, err := v.Config()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ErrFeatureDisabled
	}
	if strings.TrimSpace(req.OriginalText) == "" || strings.TrimSpace(req.TranslatedText) == "" {
		return nil, ErrEmptyContent
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	items, err := v.Items()
	if err != nil {
		return nil, err
	}

	for i, item := range items {
		if item.OriginalText == req.OriginalText &&
			item.SourceLanguage == req.SourceLanguage &&
			item.TargetLanguage == req.TargetLanguage {
			updated := item
			updated.TranslatedText = req.TranslatedText
			updated.Platform = req.Platform
			updated.Timestamp = time.Now().UnixMilli()
			if req.Phonetic != nil {
				updated.Phonetic = req.Phonetic
			}
			if req.Tags != nil {
				updated.Tags = req.Tags
			} else if updated.Tags == nil {
				updated.Tags = []string{}
			}
			if req.Notes != "" {
				updated.Notes = req.Notes
			}

			items[i] = updated
			if err := v.store.Put(entities.KeyVocabularyItems, items); err != nil {
				return nil, err
			}
			return &updated, nil
		}
	}

	id, err := newItemID()
	if err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = cfg.DefaultTags
	}
	if tags == nil {
		tags = []string{}
	}

	item := entities.VocabularyItem{
		ID:             id,
		OriginalText:   req.OriginalText,
		TranslatedText: req.TranslatedText,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Platform:       req.Platform,
		Timestamp:      time.Now().UnixMilli(),
		Phonetic:       req.Phonetic,
		Tags:           tags,
		Notes:          req.Notes,
		Favorite:       false,
		ReviewCount:    0,
		Difficulty:     entities.DifficultyMedium,
	}

	items = append([]entities.VocabularyItem{item}, items...)
	items = capItems(items, cfg.MaxVocabularyItems)

	if err := v.store.Put(entities.KeyVocabularyItems, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Get returns the item with the given id, or nil when unknown.
func (v *Vocabulary) Get(id string) (*entities.VocabularyItem, error) {
	items, err := v.Items()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Remove deletes a single item by id. Removing an unknown id is a no-op.
func (v *Vocabulary) Remove(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	items, err := v.Items()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return v.store.Put(entities.KeyVocabularyItems, kept)
}

// Clear removes all vocabulary items.
func (v *Vocabulary) Clear() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Put(entities.KeyVocabularyItems, []entities.VocabularyItem{})
}

// Update applies the non-nil fields of the partial update to the item.
// The id and creation timestamp never change. Returns nil for an unknown
// id, which is not exceptional in a concurrent-write environment.
func (v *Vocabulary) Update(id string, update entities.VocabularyUpdate) (*entities.VocabularyItem, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mutate(id, func(item *entities.VocabularyItem) {
		if update.OriginalText != nil {
			item.OriginalText = *update.OriginalText
		}
		if update.TranslatedText != nil {
			item.TranslatedText = *update.TranslatedText
		}
		if update.SourceLanguage != nil {
			item.SourceLanguage = *update.SourceLanguage
		}
		if update.TargetLanguage != nil {
			item.TargetLanguage = *update.TargetLanguage
		}
		if update.Platform != nil {
			item.Platform = *update.Platform
		}
		if update.Phonetic != nil {
			item.Phonetic = update.Phonetic
		}
		if update.Tags != nil {
			item.Tags = *update.Tags
		}
		if update.Notes != nil {
			item.Notes = *update.Notes
		}
		if update.Favorite != nil {
			item.Favorite = *update.Favorite
		}
		if update.ReviewCount != nil {
			item.ReviewCount = *update.ReviewCount
		}
		if update.LastReviewed != nil {
			item.LastReviewed = *update.LastReviewed
		}
		if update.Difficulty != nil {
			item.Difficulty = *update.Difficulty
		}
	})
}

// ToggleFavorite flips the favorite flag. Returns nil for an unknown id.
func (v *Vocabulary) ToggleFavorite(id string) (*entities.VocabularyItem, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mutate(id, func(item *entities.VocabularyItem) {
		item.Favorite = !item.Favorite
	})
}

// MarkAsReviewed increments the review count and stamps the review time.
// An empty difficulty keeps the current value (defaulting to medium).
func (v *Vocabulary) MarkAsReviewed(id string, difficulty entities.Difficulty) (*entities.VocabularyItem, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mutate(id, func(item *entities.VocabularyItem) {
		item.ReviewCount++
		item.LastReviewed = time.Now().UnixMilli()
		if difficulty != "" {
			item.Difficulty = difficulty
		} else if item.Difficulty == "" {
			item.Difficulty = entities.DifficultyMedium
		}
	})
}

// mutate loads the collection, applies fn to the item with the given id
// and writes the collection back. Caller holds the mutex.
func (v *Vocabulary) mutate(id string, fn func(*entities.VocabularyItem)) (*entities.VocabularyItem, error) {
	items, err := v.Items()
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		fn(&items[i])
		items[i].ID = id // identity is immutable
		if err := v.store.Put(entities.KeyVocabularyItems, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, nil
}

// Search matches the query case-insensitively against original text,
// translated text, tags and notes. An empty query returns the full list.
func (v *Vocabulary) Search(query string) ([]entities.VocabularyItem, error) {
	items, err := v.Items()
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items, nil
	}

	var matched []entities.VocabularyItem
	for _, item := range items {
		if itemMatches(item, query) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func itemMatches(item entities.VocabularyItem, query string) bool {
	if strings.Contains(strings.ToLower(item.OriginalText), query) ||
		strings.Contains(strings.ToLower(item.TranslatedText), query) ||
		strings.Contains(strings.ToLower(item.Notes), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// FilterByTag returns items carrying the exact tag.
func (v *Vocabulary) FilterByTag(tag string) ([]entities.VocabularyItem, error) {
	items, err := v.Items()
	if err != nil {
		return nil, err
	}
	var matched []entities.VocabularyItem
	for _, item := range items {
		for _, t := range item.Tags {
			if t == tag {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched, nil
}

// Favorites returns only favorited items.
func (v *Vocabulary) Favorites() ([]entities.VocabularyItem, error) {
	items, err := v.Items()
	if err != nil {
		return nil, err
	}
	var matched []entities.VocabularyItem
	for _, item := range items {
		if item.Favorite {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// MissingPhonetics returns items that have no phonetic info yet, oldest
// first, used by the background enrichment tasks.
func (v *Vocabulary) MissingPhonetics(limit int) ([]entities.VocabularyItem, error) {
	items, err := v.Items()
	if err != nil {
		return nil, err
	}
	var missing []entities.VocabularyItem
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Phonetic == nil {
			missing = append(missing, items[i])
			if limit > 0 && len(missing) >= limit {
				break
			}
		}
	}
	return missing, nil
}

// Stats computes aggregate vocabulary counts on demand.
func (v *Vocabulary) Stats() (entities.VocabularyStats, error) {
	items, err := v.Items()
	if err != nil {
		return entities.VocabularyStats{}, err
	}

	stats := entities.VocabularyStats{
		TotalItems: len(items),
		ByDifficulty: map[entities.Difficulty]int{
			entities.DifficultyEasy:   0,
			entities.DifficultyMedium: 0,
			entities.DifficultyHard:   0,
		},
		ByLanguage: map[string]int{},
	}
	if len(items) == 0 {
		return stats, nil
	}

	for _, item := range items {
		if item.Favorite {
			stats.FavoritesCount++
		}
		if item.Difficulty != "" {
			stats.ByDifficulty[item.Difficulty]++
		}
		pair := item.SourceLanguage + "-" + item.TargetLanguage
		stats.ByLanguage[pair]++
	}

	// Items are newest-first.
	last := items[0].Timestamp
	stats.LastAdded = &last
	return stats, nil
}
