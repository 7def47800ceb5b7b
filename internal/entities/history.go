package entities

// HistoryItem is a single recorded translation. Items are immutable after
// creation; they are only ever deleted (individually or by bulk clear).
type HistoryItem struct {
	ID             string `json:"id"`
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Platform       string `json:"platform"`
	Timestamp      int64  `json:"timestamp"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

// HistoryConfig controls the translation history collection.
type HistoryConfig struct {
	MaxHistoryItems int  `json:"maxHistoryItems"`
	Enabled         bool `json:"enabled"`
}

// DefaultHistoryConfig is written back to storage on first read.
func DefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		MaxHistoryItems: 100,
		Enabled:         true,
	}
}

// HistoryStats are aggregate counts computed on demand, never cached.
type HistoryStats struct {
	TotalItems      int    `json:"totalItems"`
	OldestTimestamp *int64 `json:"oldestTimestamp"`
	NewestTimestamp *int64 `json:"newestTimestamp"`
}
