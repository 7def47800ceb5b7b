package phonetic

import (
	"context"
	"log"
	"strings"

	"github.com/lexhover/lexhover/internal/entities"
)

// ConfigStore is the slice of the storage contract the service needs to
// read its configuration.
type ConfigStore interface {
	Get(key string, dest any) (bool, error)
	Put(key string, value any) error
}

// Service selects a phonetic client based on the stored configuration and
// falls back to the offline table when the remote provider fails.
type Service struct {
	store    ConfigStore
	clients  map[string]Client
	fallback *LocalClient
}

// NewService creates a phonetic service with the built-in clients.
func NewService(store ConfigStore) *Service {
	local := NewLocalClient()
	clients := map[string]Client{}
	for _, c := range []Client{NewFreeDictClient(), local} {
		clients[c.Name()] = c
	}
	return &Service{
		store:    store,
		clients:  clients,
		fallback: local,
	}
}

// RegisterClient adds or replaces a phonetic client.
func (s *Service) RegisterClient(c Client) {
	s.clients[c.Name()] = c
}

// Config returns the stored phonetic configuration, persisting the
// default on first read.
func (s *Service) Config() (entities.PhoneticConfig, error) {
	cfg := entities.DefaultPhoneticConfig()
	found, err := s.store.Get(entities.KeyPhoneticConfig, &cfg)
	if err != nil {
		return entities.PhoneticConfig{}, err
	}
	if !found {
		if err := s.store.Put(entities.KeyPhoneticConfig, cfg); err != nil {
			return entities.PhoneticConfig{}, err
		}
	}
	return cfg, nil
}

// Lookup resolves a word's pronunciation. It returns nil, nil when the
// feature is disabled, the word is empty after cleaning, or no provider
// knows the word.
func (s *Service) Lookup(ctx context.Context, word, language string) (*entities.PhoneticInfo, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, nil
	}

	cleaned := cleanWord(word)
	if cleaned == "" {
		return nil, nil
	}

	client, ok := s.clients[cfg.Provider]
	if !ok {
		client = s.fallback
	}

	info, err := client.Lookup(ctx, cleaned, language)
	if err != nil {
		log.Printf("[PHONETIC] %s lookup failed for %q: %v", client.Name(), cleaned, err)
		return s.fallback.Lookup(ctx, cleaned, language)
	}
	if info == nil && client != s.fallback {
		return s.fallback.Lookup(ctx, cleaned, language)
	}
	return info, nil
}

// cleanWord strips sentence punctuation so "hello," resolves like "hello".
func cleanWord(word string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '!', '?', ';', ':':
			return -1
		}
		return r
	}, word)
	return strings.TrimSpace(cleaned)
}
