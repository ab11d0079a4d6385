package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

var errUpstreamUnavailable = errors.New("search backend unavailable")

// siteQuery matches "site:<domain> ... <ORIG> to <DEST> <date>".
var siteQuery = regexp.MustCompile(`^site:(\S+) .*?([A-Z]{3}) to ([A-Z]{3}) (\S+)$`)

type webResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type webResponse struct {
	Web struct {
		Results []webResult `json:"results"`
	} `json:"web"`
}

// MockSearch answers web search queries with flight listings for the queried
// site plus some off-domain noise.
type MockSearch struct {
	apiKey      string
	failureRate float64
	logger      *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockSearch creates a MockSearch. An empty apiKey accepts any token.
func NewMockSearch(apiKey string, failureRate float64, logger *slog.Logger) *MockSearch {
	return &MockSearch{
		apiKey:      apiKey,
		failureRate: failureRate,
		logger:      logger,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MockSearch) intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Intn(n)
}

func (m *MockSearch) float() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Float64()
}

// search simulates a search backend with random latency and failures.
func (m *MockSearch) search(ctx context.Context, query string) ([]webResult, error) {
	latency := time.Duration(50+m.intn(150)) * time.Millisecond

	select {
	case <-time.After(latency):
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}

	if m.float() < m.failureRate {
		return nil, errUpstreamUnavailable
	}

	match := siteQuery.FindStringSubmatch(query)
	if match == nil {
		return []webResult{}, nil
	}
	return m.generateResults(match[1], match[2], match[3], match[4]), nil
}

func (m *MockSearch) generateResults(domain, origin, destination, date string) []webResult {
	base := "https://www." + domain

	return []webResult{
		{
			Title:       fmt.Sprintf("Cheap direct flights %s to %s", origin, destination),
			URL:         fmt.Sprintf("%s/%s-%s/%s", base, strings.ToLower(origin), strings.ToLower(destination), date),
			Description: fmt.Sprintf("Nonstop flights from $%d. Compare airlines for %s.", m.price(250, 600), date),
		},
		{
			Title:       fmt.Sprintf("%s → %s from $%s", origin, destination, m.grouped(1000, 2500)),
			URL:         fmt.Sprintf("%s/business/%s-%s", base, strings.ToLower(origin), strings.ToLower(destination)),
			Description: "Business class, direct only.",
		},
		{
			Title:       fmt.Sprintf("Flights to %s", destination),
			URL:         fmt.Sprintf("%s/routes/%s", base, strings.ToLower(destination)),
			Description: fmt.Sprintf("Fares seen at £%d.%02d this week.", m.price(200, 500), m.intn(100)),
		},
		{
			Title:       fmt.Sprintf("%s %s flight deals", origin, destination),
			URL:         fmt.Sprintf("%s/deals", base),
			Description: "Sign up for price alerts.",
		},
		{
			Title:       fmt.Sprintf("%s to %s on another site", origin, destination),
			URL:         "https://www.example-travel.com/flights",
			Description: fmt.Sprintf("Only $%d!", m.price(50, 100)),
		},
	}
}

func (m *MockSearch) price(min, max int) int {
	return min + m.intn(max-min)
}

// grouped formats a price in [min, max) with a thousands separator.
func (m *MockSearch) grouped(min, max int) string {
	p := m.price(min, max)
	return fmt.Sprintf("%d,%03d", p/1000, p%1000)
}

// ServeHTTP handles HTTP requests for the mock search API.
func (m *MockSearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Subscription-Token")
	if token == "" || (m.apiKey != "" && token != m.apiKey) {
		http.Error(w, "invalid subscription token", http.StatusUnauthorized)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "missing q", http.StatusBadRequest)
		return
	}

	results, err := m.search(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	var resp webResponse
	resp.Web.Results = results

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		m.logger.Error("failed to encode response", "error", err)
		return
	}
}
