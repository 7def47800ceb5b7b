// Package providers implements the translation platform registry. Each
// platform is an independently configured and independently health-checked
// capability; selection is by registry lookup, never by inheritance.
package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/lexhover/lexhover/internal/entities"
)

// requestTimeout bounds every outbound provider call. A timed-out call
// fails like any other provider failure.
const requestTimeout = 8 * time.Second

// canaryTarget is the fixed target language used by health checks.
const canaryTarget = "zh-CN"

// Language is a supported language. Order is significant for UI listing
// but carries no semantics.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ConfigField declares one required or optional platform config entry,
// e.g. an API key.
type ConfigField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Secret   bool   `json:"secret"`
}

// Platform is a single translation backend.
type Platform interface {
	Code() string
	Name() string
	Languages() []Language
	ConfigSchema() []ConfigField

	// Config returns the platform's stored config fields, lazily
	// persisting an empty config when none exists.
	Config(ctx context.Context) (map[string]string, error)

	// CheckPlatform reports whether the platform is usable right now.
	// It returns false without a network call when required config is
	// missing, and otherwise attempts a canary translation, swallowing
	// all errors into false.
	CheckPlatform(ctx context.Context) bool

	// Translate never mutates platform state. It either returns a
	// result with a non-empty Result or an error, never both.
	Translate(ctx context.Context, text, source, target string) (*entities.TranslateResult, error)
}

// ConfigStore is the slice of the storage contract platforms need for
// their secret config fields.
type ConfigStore interface {
	Get(key string, dest any) (bool, error)
	Put(key string, value any) error
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// loadConfig reads a platform's config map from storage, writing back an
// empty default on first read.
func loadConfig(store ConfigStore, platformCode string) (map[string]string, error) {
	cfg := map[string]string{}
	found, err := store.Get(entities.KeyPlatformConfig(platformCode), &cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := store.Put(entities.KeyPlatformConfig(platformCode), cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// hasRequiredConfig reports whether every required schema field has a
// non-empty value.
func hasRequiredConfig(schema []ConfigField, cfg map[string]string) bool {
	for _, field := range schema {
		if field.Required && cfg[field.Name] == "" {
			return false
		}
	}
	return true
}

// checkWithCanary runs the shared health-check protocol: verify required
// config without touching the network, then attempt a canary translation.
func checkWithCanary(ctx context.Context, p Platform) bool {
	cfg, err := p.Config(ctx)
	if err != nil {
		return false
	}
	if !hasRequiredConfig(p.ConfigSchema(), cfg) {
		return false
	}

	result, err := p.Translate(ctx, "hello", "auto", canaryTarget)
	if err != nil {
		return false
	}
	return result.Result != ""
}
