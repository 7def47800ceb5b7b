// Package phonetic provides pronunciation lookups for translated words.
// A nil result with a nil error means "no phonetic available", which is a
// valid outcome, never a failure.
package phonetic

import (
	"context"

	"github.com/lexhover/lexhover/internal/entities"
)

// Client defines the interface for phonetic providers.
type Client interface {
	Lookup(ctx context.Context, word, language string) (*entities.PhoneticInfo, error)
	Name() string
}
