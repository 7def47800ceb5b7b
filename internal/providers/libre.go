package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lexhover/lexhover/internal/entities"
)

const defaultLibreBaseURL = "https://libretranslate.com/translate"

// LibrePlatform translates through a LibreTranslate instance. An API key
// is required for the hosted service.
type LibrePlatform struct {
	store      ConfigStore
	httpClient *http.Client
	baseURL    string
}

// NewLibrePlatform creates the LibreTranslate platform.
func NewLibrePlatform(store ConfigStore) *LibrePlatform {
	return &LibrePlatform{
		store:      store,
		httpClient: newHTTPClient(),
		baseURL:    defaultLibreBaseURL,
	}
}

// SetBaseURL points the platform at a self-hosted LibreTranslate
// instance instead of the hosted service.
func (l *LibrePlatform) SetBaseURL(url string) { l.baseURL = url }

func (l *LibrePlatform) Code() string { return "libre" }

func (l *LibrePlatform) Name() string { return "LibreTranslate" }

func (l *LibrePlatform) Languages() []Language {
	return []Language{
		{Code: "auto", Name: "Detect language"},
		{Code: "en", Name: "English"},
		{Code: "zh", Name: "Chinese"},
		{Code: "ja", Name: "Japanese"},
		{Code: "ko", Name: "Korean"},
		{Code: "es", Name: "Spanish"},
		{Code: "fr", Name: "French"},
		{Code: "de", Name: "German"},
		{Code: "ru", Name: "Russian"},
		{Code: "it", Name: "Italian"},
		{Code: "pt", Name: "Portuguese"},
	}
}

func (l *LibrePlatform) ConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "api_key", Label: "API key", Required: true, Secret: true},
	}
}

func (l *LibrePlatform) Config(ctx context.Context) (map[string]string, error) {
	return loadConfig(l.store, l.Code())
}

func (l *LibrePlatform) CheckPlatform(ctx context.Context) bool {
	return checkWithCanary(ctx, l)
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key"`
}

type libreResponse struct {
	TranslatedText   string   `json:"translatedText"`
	Alternatives     []string `json:"alternatives"`
	DetectedLanguage struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	} `json:"detectedLanguage"`
	Error string `json:"error"`
}

func (l *LibrePlatform) Translate(ctx context.Context, text, source, target string) (*entities.TranslateResult, error) {
	cfg, err := l.Config(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(libreRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: cfg["api_key"],
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Platform: l.Code(), Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Platform: l.Code(), StatusCode: resp.StatusCode}
	}

	var payload libreResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &RequestError{Platform: l.Code(), Reason: "malformed response body"}
	}
	if payload.TranslatedText == "" {
		reason := payload.Error
		if reason == "" {
			reason = "empty translation"
		}
		return nil, &RequestError{Platform: l.Code(), Reason: reason}
	}

	var additional string
	if len(payload.Alternatives) > 0 {
		var b strings.Builder
		for i, alt := range payload.Alternatives {
			fmt.Fprintf(&b, "%d. %s\n", i+1, alt)
		}
		additional = strings.TrimSuffix(b.String(), "\n")
	}

	return &entities.TranslateResult{
		Result:           payload.TranslatedText,
		Additional:       additional,
		DetectedLanguage: payload.DetectedLanguage.Language,
	}, nil
}
