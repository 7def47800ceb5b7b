package entities

// Storage keys for all durable state. Kept in one place so every context
// reads and writes the same entries.
const (
	KeyHistoryItems     = "translationHistory"
	KeyHistoryConfig    = "translationHistoryConfig"
	KeyVocabularyItems  = "vocabularyItems"
	KeyVocabularyConfig = "vocabularyConfig"
	KeyHoverConfig      = "hoverConfig"
	KeyPhoneticConfig   = "phoneticConfig"
	KeyTranslateConfig  = "translateConfig"
	KeyLastWord         = "lastWord"
	KeyPlatformHealth   = "platformHealth"
)

// KeyPlatformConfig returns the storage key holding a platform's secret
// config fields, e.g. API keys.
func KeyPlatformConfig(platformCode string) string {
	return "platformConfig:" + platformCode
}
