package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lexhover/lexhover/internal/entities"
)

const defaultGoogleBaseURL = "https://translate.googleapis.com/translate_a/single"

// GooglePlatform translates through the free gtx endpoint of Google
// Translate. No credentials are required.
type GooglePlatform struct {
	store      ConfigStore
	httpClient *http.Client
	baseURL    string
}

// NewGooglePlatform creates the Google Translate platform.
func NewGooglePlatform(store ConfigStore) *GooglePlatform {
	return &GooglePlatform{
		store:      store,
		httpClient: newHTTPClient(),
		baseURL:    defaultGoogleBaseURL,
	}
}

// SetBaseURL overrides the translate endpoint, e.g. a regional mirror.
func (g *GooglePlatform) SetBaseURL(url string) { g.baseURL = url }

func (g *GooglePlatform) Code() string { return "google" }

func (g *GooglePlatform) Name() string { return "Google Translate" }

func (g *GooglePlatform) Languages() []Language {
	return []Language{
		{Code: "auto", Name: "Detect language"},
		{Code: "en", Name: "English"},
		{Code: "zh-CN", Name: "Chinese (Simplified)"},
		{Code: "zh-TW", Name: "Chinese (Traditional)"},
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

func (g *GooglePlatform) ConfigSchema() []ConfigField { return nil }

func (g *GooglePlatform) Config(ctx context.Context) (map[string]string, error) {
	return loadConfig(g.store, g.Code())
}

func (g *GooglePlatform) CheckPlatform(ctx context.Context) bool {
	return checkWithCanary(ctx, g)
}

func (g *GooglePlatform) Translate(ctx context.Context, text, source, target string) (*entities.TranslateResult, error) {
	query := url.Values{}
	query.Set("client", "gtx")
	query.Add("dt", "t")
	query.Add("dt", "bd")
	query.Set("sl", source)
	query.Set("tl", target)
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Platform: g.Code(), Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Platform: g.Code(), StatusCode: resp.StatusCode}
	}

	// The gtx endpoint answers a positional JSON array:
	//   [0] translated segments, [1] dictionary entries, [2] detected language.
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &RequestError{Platform: g.Code(), Reason: "malformed response body"}
	}
	if len(payload) == 0 {
		return nil, &RequestError{Platform: g.Code(), Reason: "empty response"}
	}

	result, err := g.parseSegments(payload[0])
	if err != nil {
		return nil, err
	}
	if result == "" {
		return nil, &RequestError{Platform: g.Code(), Reason: "empty translation"}
	}

	var additional string
	if len(payload) > 1 {
		additional = g.parseDictionary(payload[1])
	}

	var detected string
	if len(payload) > 2 {
		_ = json.Unmarshal(payload[2], &detected)
	}

	return &entities.TranslateResult{
		Result:           result,
		Additional:       additional,
		DetectedLanguage: detected,
	}, nil
}

// parseSegments joins the translated fragment of every segment.
func (g *GooglePlatform) parseSegments(raw json.RawMessage) (string, error) {
	var segments [][]any
	if err := json.Unmarshal(raw, &segments); err != nil {
		return "", &RequestError{Platform: g.Code(), Reason: "malformed segment list"}
	}

	var b strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		if fragment, ok := segment[0].(string); ok {
			b.WriteString(fragment)
		}
	}
	return b.String(), nil
}

// parseDictionary flattens dictionary entries ([partOfSpeech, [terms]])
// into a plain-text block; rendering is the UI surface's concern.
func (g *GooglePlatform) parseDictionary(raw json.RawMessage) string {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	for _, entry := range entries {
		var fields []any
		if err := json.Unmarshal(entry, &fields); err != nil || len(fields) < 2 {
			continue
		}
		pos, ok := fields[0].(string)
		if !ok {
			continue
		}
		terms, ok := fields[1].([]any)
		if !ok {
			continue
		}

		b.WriteString(pos)
		b.WriteString(":")
		for i, term := range terms {
			if word, ok := term.(string); ok {
				fmt.Fprintf(&b, " %d. %s", i+1, word)
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
