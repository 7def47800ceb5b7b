package entities

// TranslateResult is the ephemeral payload produced by a translation
// platform for a single request. It is never persisted as-is; successful
// results are turned into HistoryItems or VocabularyItems.
type TranslateResult struct {
	Result           string `json:"result"`
	Additional       string `json:"additional"`
	DetectedLanguage string `json:"detectedLanguage"`
}

// PhoneticInfo is optional pronunciation enrichment for a word.
// A nil PhoneticInfo is a valid state, not an error.
type PhoneticInfo struct {
	Text     string `json:"text"`
	Phonetic string `json:"phonetic,omitempty"`
	AudioURL string `json:"audioUrl,omitempty"`
	Source   string `json:"source,omitempty"`
}
