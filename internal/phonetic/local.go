package phonetic

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lexhover/lexhover/internal/entities"
)

// localPhonetics is a small built-in pronunciation table used when no
// remote provider is configured or reachable.
var localPhonetics = map[string]string{
	"hello":         "/həˈləʊ/",
	"world":         "/wɜːld/",
	"computer":      "/kəmˈpjuːtə/",
	"translation":   "/trænsˈleɪʃən/",
	"dictionary":    "/ˈdɪkʃənəri/",
	"language":      "/ˈlæŋɡwɪdʒ/",
	"phonetic":      "/fəˈnetɪk/",
	"international": "/ˌɪntəˈnæʃənəl/",
	"alphabet":      "/ˈælfəbet/",
	"pronunciation": "/prəˌnʌnsiˈeɪʃən/",

	"你好": "nǐ hǎo",
	"谢谢": "xiè xiè",
	"再见": "zài jiàn",
	"中国": "zhōng guó",
	"美国": "měi guó",
}

// ttsLanguageCodes maps language codes to Google TTS codes.
var ttsLanguageCodes = map[string]string{
	"en":    "en",
	"en-US": "en-US",
	"en-GB": "en-GB",
	"zh":    "zh-CN",
	"zh-CN": "zh-CN",
	"zh-TW": "zh-TW",
	"ja":    "ja",
	"ko":    "ko",
	"fr":    "fr",
	"de":    "de",
	"es":    "es",
	"ru":    "ru",
	"it":    "it",
	"pt":    "pt",
}

// LocalClient looks up pronunciations in the built-in table. It never
// touches the network and never fails.
type LocalClient struct{}

// NewLocalClient creates the offline phonetic client.
func NewLocalClient() *LocalClient {
	return &LocalClient{}
}

func (c *LocalClient) Name() string {
	return "local"
}

func (c *LocalClient) Lookup(ctx context.Context, word, language string) (*entities.PhoneticInfo, error) {
	if phonetic, ok := localPhonetics[strings.ToLower(word)]; ok {
		return &entities.PhoneticInfo{
			Text:     word,
			Phonetic: phonetic,
			AudioURL: GenerateAudioURL(word, language),
			Source:   c.Name(),
		}, nil
	}

	if strings.HasPrefix(language, "zh") {
		// No pinyin table beyond the built-in entries; still label the
		// word so the surface can show something.
		return &entities.PhoneticInfo{
			Text:     word,
			Phonetic: fmt.Sprintf("[Chinese: %s]", word),
			AudioURL: GenerateAudioURL(word, language),
			Source:   c.Name(),
		}, nil
	}

	return nil, nil
}

// GenerateAudioURL builds a Google TTS pronunciation URL, or "" for
// unsupported languages.
func GenerateAudioURL(word, language string) string {
	code := ttsLanguageCode(language)
	if code == "" {
		return ""
	}
	return fmt.Sprintf(
		"https://translate.google.com/translate_tts?client=tw-ob&ie=UTF-8&tl=%s&q=%s",
		code, url.QueryEscape(word),
	)
}

// IsSupported reports whether phonetic lookup makes sense for a language.
func IsSupported(language string) bool {
	return ttsLanguageCode(language) != ""
}

func ttsLanguageCode(language string) string {
	if language == "" {
		return ""
	}
	if code, ok := ttsLanguageCodes[language]; ok {
		return code
	}
	base, _, _ := strings.Cut(language, "-")
	return ttsLanguageCodes[base]
}
