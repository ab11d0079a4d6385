package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alex-user-go/flightfinder/internal/failure"
)

// DefaultEndpoint is the Brave web search endpoint.
const DefaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

// BraveConfig configures a BraveProvider.
type BraveConfig struct {
	APIKey    string
	Endpoint  string
	Timeout   time.Duration
	Count     int
	Language  string
	Transport http.RoundTripper
}

// BraveProvider queries the Brave web search API.
type BraveProvider struct {
	apiKey     string
	endpoint   string
	timeout    time.Duration
	count      int
	language   string
	httpClient *http.Client
}

// NewBraveProvider creates a new BraveProvider. Zero values fall back to the
// endpoint defaults: 30s timeout, 10 results, English.
func NewBraveProvider(cfg BraveConfig) *BraveProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Count <= 0 {
		cfg.Count = 10
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return &BraveProvider{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		count:    cfg.Count,
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
	}
}

// Search runs one GET request for query.
func (p *BraveProvider) Search(ctx context.Context, query string) (*Response, error) {
	u, err := url.Parse(p.endpoint)
	if err != nil {
		return nil, p.networkError(fmt.Errorf("invalid endpoint: %w", err))
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("count", strconv.Itoa(p.count))
	q.Set("search_lang", p.language)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, p.networkError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("X-Subscription-Token", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, failure.Wrap(failure.Timeout, err,
				fmt.Sprintf("Search request timed out after %d seconds", int(p.timeout.Seconds())),
				"Try again or check your internet connection")
		}
		return nil, p.networkError(fmt.Errorf("request failed: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, p.networkError(fmt.Errorf("search API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if isTimeout(err) {
			return nil, failure.Wrap(failure.Timeout, err,
				fmt.Sprintf("Search request timed out after %d seconds", int(p.timeout.Seconds())),
				"Try again or check your internet connection")
		}
		return nil, p.networkError(fmt.Errorf("failed to parse response: %w", err))
	}

	return &Response{Hits: decodeHits(payload)}, nil
}

func (p *BraveProvider) networkError(err error) *failure.Failure {
	return failure.Wrap(failure.NetworkError, err,
		fmt.Sprintf("Network error: %v", err),
		"Check your internet connection and API key")
}

// decodeHits walks web.results. Missing or mistyped fields read as empty.
func decodeHits(payload map[string]any) []Hit {
	web, _ := payload["web"].(map[string]any)
	results, _ := web["results"].([]any)

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		item, ok := r.(map[string]any)
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			Title:       stringField(item, "title"),
			Description: stringField(item, "description"),
			URL:         stringField(item, "url"),
		})
	}
	return hits
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
