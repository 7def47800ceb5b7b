package entities

// Difficulty is the self-assessed review difficulty of a vocabulary item.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// VocabularyItem is a saved word pair. At most one item exists per
// (originalText, sourceLanguage, targetLanguage) triple; re-adding the same
// triple updates the existing item in place.
type VocabularyItem struct {
	ID             string        `json:"id"`
	OriginalText   string        `json:"originalText"`
	TranslatedText string        `json:"translatedText"`
	SourceLanguage string        `json:"sourceLanguage"`
	TargetLanguage string        `json:"targetLanguage"`
	Platform       string        `json:"platform"`
	Timestamp      int64         `json:"timestamp"`
	Phonetic       *PhoneticInfo `json:"phonetic,omitempty"`
	Tags           []string      `json:"tags"`
	Notes          string        `json:"notes,omitempty"`
	Favorite       bool          `json:"favorite"`
	ReviewCount    int           `json:"reviewCount"`
	LastReviewed   int64         `json:"lastReviewed,omitempty"`
	Difficulty     Difficulty    `json:"difficulty,omitempty"`
}

// VocabularyConfig controls the vocabulary collection.
type VocabularyConfig struct {
	MaxVocabularyItems int      `json:"maxVocabularyItems"`
	Enabled            bool     `json:"enabled"`
	AutoAddFavorites   bool     `json:"autoAddFavorites"`
	DefaultTags        []string `json:"defaultTags"`
	ExportFormat       string   `json:"exportFormat"`
}

// DefaultVocabularyConfig is written back to storage on first read.
func DefaultVocabularyConfig() VocabularyConfig {
	return VocabularyConfig{
		MaxVocabularyItems: 500,
		Enabled:            true,
		AutoAddFavorites:   false,
		DefaultTags:        []string{"new", "important", "difficult"},
		ExportFormat:       "csv",
	}
}

// VocabularyStats are aggregate counts computed on demand.
type VocabularyStats struct {
	TotalItems     int                `json:"totalItems"`
	FavoritesCount int                `json:"favoritesCount"`
	ByDifficulty   map[Difficulty]int `json:"byDifficulty"`
	ByLanguage     map[string]int     `json:"byLanguage"`
	LastAdded      *int64             `json:"lastAdded,omitempty"`
}

// VocabularyUpdate is a partial update for a vocabulary item. Nil fields
// are left untouched; the item's ID and creation timestamp never change.
type VocabularyUpdate struct {
	OriginalText   *string       `json:"originalText,omitempty"`
	TranslatedText *string       `json:"translatedText,omitempty"`
	SourceLanguage *string       `json:"sourceLanguage,omitempty"`
	TargetLanguage *string       `json:"targetLanguage,omitempty"`
	Platform       *string       `json:"platform,omitempty"`
	Phonetic       *PhoneticInfo `json:"phonetic,omitempty"`
	Tags           *[]string     `json:"tags,omitempty"`
	Notes          *string       `json:"notes,omitempty"`
	Favorite       *bool         `json:"favorite,omitempty"`
	ReviewCount    *int          `json:"reviewCount,omitempty"`
	LastReviewed   *int64        `json:"lastReviewed,omitempty"`
	Difficulty     *Difficulty   `json:"difficulty,omitempty"`
}
