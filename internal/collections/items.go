package collections

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
)

// sortNewestFirst orders items descending by the extracted timestamp.
// Callers must not assume stored order survives a raw write that bypasses
// the collection, so this runs on every read.
func sortNewestFirst[T any](items []T, timestamp func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return timestamp(items[i]) > timestamp(items[j])
	})
}

// capItems drops the oldest (tail) entries beyond max. A non-positive max
// leaves the list untouched.
func capItems[T any](items []T, max int) []T {
	if max > 0 && len(items) > max {
		return items[:max]
	}
	return items
}

// newItemID returns 16 hex characters from a cryptographically strong
// source. Unguessable and collision-resistant, unlike a counter.
func newItemID() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate item id: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
