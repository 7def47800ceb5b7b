package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/lexhover/lexhover/internal/entities"
)

// VocabularyUpdater is the slice of the vocabulary collection the
// enrichment tasks need.
type VocabularyUpdater interface {
	Get(id string) (*entities.VocabularyItem, error)
	Update(id string, update entities.VocabularyUpdate) (*entities.VocabularyItem, error)
	MissingPhonetics(limit int) ([]entities.VocabularyItem, error)
}

// PhoneticLookup resolves a word's pronunciation. nil, nil means no
// phonetic is available, which completes the task without an update.
type PhoneticLookup interface {
	Lookup(ctx context.Context, word, language string) (*entities.PhoneticInfo, error)
}

// EnrichPhoneticTask fills in the phonetic of a single vocabulary item.
type EnrichPhoneticTask struct {
	ItemID string `json:"item_id"`
}

func (t EnrichPhoneticTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_phonetic",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichPhoneticProcessor creates a processor for single-item enrichment.
func EnrichPhoneticProcessor(vocabulary VocabularyUpdater, phonetics PhoneticLookup) backlite.QueueProcessor[EnrichPhoneticTask] {
	return func(ctx context.Context, task EnrichPhoneticTask) error {
		item, err := vocabulary.Get(task.ItemID)
		if err != nil {
			return fmt.Errorf("get item %s: %w", task.ItemID, err)
		}
		if item == nil {
			// Evicted or removed since enqueue; nothing to enrich.
			log.Printf("[TASK] Item %s no longer exists, skipping", task.ItemID)
			return nil
		}
		if item.Phonetic != nil {
			return nil
		}

		info, err := phonetics.Lookup(ctx, item.OriginalText, item.SourceLanguage)
		if err != nil {
			return fmt.Errorf("lookup phonetic for %q: %w", item.OriginalText, err)
		}
		if info == nil {
			log.Printf("[TASK] No phonetic available for %q", item.OriginalText)
			return nil
		}

		if _, err := vocabulary.Update(task.ItemID, entities.VocabularyUpdate{Phonetic: info}); err != nil {
			return fmt.Errorf("store phonetic for %s: %w", task.ItemID, err)
		}

		log.Printf("[TASK] Enriched %q with phonetic %s", item.OriginalText, info.Phonetic)
		return nil
	}
}

func NewEnrichPhoneticQueue(vocabulary VocabularyUpdater, phonetics PhoneticLookup) backlite.Queue {
	return backlite.NewQueue(EnrichPhoneticProcessor(vocabulary, phonetics))
}

// EnrichAllMissingPhoneticsTask sweeps the vocabulary for items without a
// phonetic and enriches them sequentially.
type EnrichAllMissingPhoneticsTask struct{}

func (t EnrichAllMissingPhoneticsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_all_phonetics",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func EnrichAllMissingPhoneticsProcessor(vocabulary VocabularyUpdater, phonetics PhoneticLookup) backlite.QueueProcessor[EnrichAllMissingPhoneticsTask] {
	return func(ctx context.Context, task EnrichAllMissingPhoneticsTask) error {
		items, err := vocabulary.MissingPhonetics(0) // 0 = no limit
		if err != nil {
			return fmt.Errorf("list items missing phonetics: %w", err)
		}

		var enriched, failed int
		for _, item := range items {
			select {
			case <-ctx.Done():
				log.Printf("[TASK] Context cancelled, enriched %d items, %d failed", enriched, failed)
				return ctx.Err()
			default:
			}

			info, err := phonetics.Lookup(ctx, item.OriginalText, item.SourceLanguage)
			if err != nil || info == nil {
				failed++
				continue
			}

			if _, err := vocabulary.Update(item.ID, entities.VocabularyUpdate{Phonetic: info}); err != nil {
				failed++
				continue
			}
			enriched++
		}

		log.Printf("[TASK] Enriched %d items, %d skipped or failed out of %d total", enriched, failed, len(items))
		return nil
	}
}

func NewEnrichAllMissingPhoneticsQueue(vocabulary VocabularyUpdater, phonetics PhoneticLookup) backlite.Queue {
	return backlite.NewQueue(EnrichAllMissingPhoneticsProcessor(vocabulary, phonetics))
}
