package phonetic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lexhover/lexhover/internal/entities"
)

// FreeDictClient implements Client using the Free Dictionary API.
// API docs: https://dictionaryapi.dev/
type FreeDictClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewFreeDictClient creates a new Free Dictionary API client.
func NewFreeDictClient() *FreeDictClient {
	return &FreeDictClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     "https://api.dictionaryapi.dev/api/v2/entries/en",
		rateLimiter: newRateLimiter(500 * time.Millisecond),
	}
}

func (c *FreeDictClient) Name() string {
	return "freedict"
}

// Lookup fetches the pronunciation of a word. The Free Dictionary API
// covers English only; other languages resolve to nil without a call.
func (c *FreeDictClient) Lookup(ctx context.Context, word, language string) (*entities.PhoneticInfo, error) {
	if language != "" && !strings.HasPrefix(language, "en") {
		return nil, nil
	}

	word = strings.TrimSpace(strings.ToLower(word))
	if word == "" {
		return nil, nil
	}

	c.rateLimiter.wait()

	url := fmt.Sprintf("%s/%s", c.baseURL, word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "LexHover/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch phonetic: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var apiResponse []freeDictResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(apiResponse) == 0 {
		return nil, nil
	}

	return c.convertToPhoneticInfo(word, apiResponse[0]), nil
}

func (c *FreeDictClient) convertToPhoneticInfo(word string, resp freeDictResponse) *entities.PhoneticInfo {
	info := &entities.PhoneticInfo{
		Text:   word,
		Source: c.Name(),
	}

	for _, phonetic := range resp.Phonetics {
		if info.Phonetic == "" && phonetic.Text != "" {
			info.Phonetic = phonetic.Text
		}
		if info.AudioURL == "" && phonetic.Audio != "" {
			info.AudioURL = phonetic.Audio
		}
	}
	if info.Phonetic == "" && resp.Phonetic != "" {
		info.Phonetic = resp.Phonetic
	}

	if info.Phonetic == "" && info.AudioURL == "" {
		return nil
	}
	return info
}

// Free Dictionary API response types

type freeDictResponse struct {
	Word      string             `json:"word"`
	Phonetic  string             `json:"phonetic"`
	Phonetics []freeDictPhonetic `json:"phonetics"`
}

type freeDictPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}
