package entities

// HoverPosition controls where the hover bubble is anchored relative to
// the pointer. Rendering itself is the UI surface's concern.
type HoverPosition string

const (
	HoverPositionCursor HoverPosition = "cursor"
	HoverPositionAbove  HoverPosition = "above"
	HoverPositionBelow  HoverPosition = "below"
)

// HoverConfig controls the transient hover translation session.
// Durations are milliseconds to stay wire-compatible with the surfaces.
type HoverConfig struct {
	Enabled            bool          `json:"enabled"`
	DelayMs            int           `json:"delay"`
	Position           HoverPosition `json:"position"`
	MaxWidth           int           `json:"maxWidth"`
	MaxHeight          int           `json:"maxHeight"`
	ShowPhonetic       bool          `json:"showPhonetic"`
	ShowFavoriteButton bool          `json:"showFavoriteButton"`
	AutoCloseDelayMs   int           `json:"autoCloseDelay"`
}

// DefaultHoverConfig is written back to storage on first read.
func DefaultHoverConfig() HoverConfig {
	return HoverConfig{
		Enabled:            true,
		DelayMs:            300,
		Position:           HoverPositionCursor,
		MaxWidth:           300,
		MaxHeight:          200,
		ShowPhonetic:       true,
		ShowFavoriteButton: true,
		AutoCloseDelayMs:   3000,
	}
}

// PhoneticConfig controls phonetic lookups.
type PhoneticConfig struct {
	Enabled           bool   `json:"enabled"`
	Provider          string `json:"apiProvider"`
	AutoFetch         bool   `json:"autoFetch"`
	ShowInTranslation bool   `json:"showInTranslation"`
	ShowAudioButton   bool   `json:"showAudioButton"`
}

// DefaultPhoneticConfig is written back to storage on first read.
func DefaultPhoneticConfig() PhoneticConfig {
	return PhoneticConfig{
		Enabled:           true,
		Provider:          "freedict",
		AutoFetch:         true,
		ShowInTranslation: true,
		ShowAudioButton:   true,
	}
}

// TranslateConfig selects the active translation platform and the
// language pair used for hover requests.
type TranslateConfig struct {
	Platform       string `json:"platform"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// DefaultTranslateConfig is written back to storage on first read.
func DefaultTranslateConfig() TranslateConfig {
	return TranslateConfig{
		Platform:       "google",
		SourceLanguage: "auto",
		TargetLanguage: "zh-CN",
	}
}
