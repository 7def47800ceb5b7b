package providers

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/sony/gobreaker"

	"github.com/lexhover/lexhover/internal/entities"
)

// Registry holds every registered platform, keyed by code. Each platform
// gets its own circuit breaker so one failing backend cannot poison the
// others.
type Registry struct {
	store     ConfigStore
	platforms map[string]Platform
	breakers  map[string]*gobreaker.CircuitBreaker
}

// NewRegistry builds a registry with the built-in platforms registered.
func NewRegistry(store ConfigStore) *Registry {
	r := &Registry{
		store:     store,
		platforms: map[string]Platform{},
		breakers:  map[string]*gobreaker.CircuitBreaker{},
	}
	r.Register(NewGooglePlatform(store))
	r.Register(NewLibrePlatform(store))
	return r
}

// Register adds a platform. Registering the same code twice replaces the
// previous platform and resets its breaker.
func (r *Registry) Register(p Platform) {
	r.platforms[p.Code()] = p
	r.breakers[p.Code()] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        p.Code(),
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[PROVIDERS] %s breaker %s -> %s", name, from, to)
		},
	})
}

// Get returns the platform registered under code.
func (r *Registry) Get(code string) (Platform, error) {
	p, ok := r.platforms[code]
	if !ok {
		return nil, ErrUnknownPlatform
	}
	return p, nil
}

// Platforms lists every registered platform sorted by code.
func (r *Registry) Platforms() []Platform {
	out := make([]Platform, 0, len(r.platforms))
	for _, p := range r.platforms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out
}

// TranslateConfig returns the stored platform selection and language
// pair, persisting the default config on first read.
func (r *Registry) TranslateConfig() (entities.TranslateConfig, error) {
	cfg := entities.DefaultTranslateConfig()
	found, err := r.store.Get(entities.KeyTranslateConfig, &cfg)
	if err != nil {
		return entities.TranslateConfig{}, err
	}
	if !found {
		if err := r.store.Put(entities.KeyTranslateConfig, cfg); err != nil {
			return entities.TranslateConfig{}, err
		}
	}
	return cfg, nil
}

// Default returns the platform selected by the stored translate config.
func (r *Registry) Default() (Platform, error) {
	cfg, err := r.TranslateConfig()
	if err != nil {
		return nil, err
	}
	return r.Get(cfg.Platform)
}

// Translate routes a translation through the named platform's circuit
// breaker. An open breaker fails fast with ErrPlatformUnavailable.
func (r *Registry) Translate(ctx context.Context, code, text, source, target string) (*entities.TranslateResult, error) {
	p, err := r.Get(code)
	if err != nil {
		return nil, err
	}

	result, err := r.breakers[code].Execute(func() (any, error) {
		return p.Translate(ctx, text, source, target)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrPlatformUnavailable
		}
		return nil, err
	}
	return result.(*entities.TranslateResult), nil
}

// PlatformHealth is one platform's availability snapshot.
type PlatformHealth struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// HealthSnapshot is the persisted result of one health sweep.
type HealthSnapshot struct {
	CheckedAt int64            `json:"checkedAt"`
	Platforms []PlatformHealth `json:"platforms"`
}

// Health checks every registered platform. Checks run sequentially; the
// registry is small and health sweeps are background work.
func (r *Registry) Health(ctx context.Context) []PlatformHealth {
	out := make([]PlatformHealth, 0, len(r.platforms))
	for _, p := range r.Platforms() {
		out = append(out, PlatformHealth{
			Code:      p.Code(),
			Name:      p.Name(),
			Available: p.CheckPlatform(ctx),
		})
	}
	return out
}
