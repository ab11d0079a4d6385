package search

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alex-user-go/flightfinder/internal/providers"
	"github.com/alex-user-go/flightfinder/internal/search/types"
	"github.com/alex-user-go/flightfinder/internal/sites"
)

const maxDescription = 200

// Checked in order; the first symbol class with a match wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?`),
	regexp.MustCompile(`£\d+(?:,\d{3})*(?:\.\d{2})?`),
	regexp.MustCompile(`€\d+(?:,\d{3})*(?:\.\d{2})?`),
}

// ExtractPrice returns the first dollar, pound or euro amount in text.
func ExtractPrice(text string) *string {
	for _, re := range pricePatterns {
		if m := re.FindString(text); m != "" {
			return &m
		}
	}
	return nil
}

// Extract turns raw hits into flight results for the site in cfg. Hits
// without a URL or outside cfg.Domain are dropped. Hits that cannot form a
// valid result are logged and counted in skipped.
func Extract(hits []providers.Hit, cfg sites.Config, logger *slog.Logger) (results []types.FlightResult, skipped int) {
	results = make([]types.FlightResult, 0, len(hits))
	for _, h := range hits {
		if h.URL == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(h.URL), cfg.Domain) {
			continue
		}

		r, err := newResult(h, cfg.Name)
		if err != nil {
			skipped++
			logger.Warn("skipping invalid result", "site", cfg.Name, "error", err)
			continue
		}
		results = append(results, r)
	}
	return results, skipped
}

func newResult(h providers.Hit, site string) (types.FlightResult, error) {
	if !strings.HasPrefix(h.URL, "http://") && !strings.HasPrefix(h.URL, "https://") {
		return types.FlightResult{}, fmt.Errorf("invalid URL: %s", h.URL)
	}
	return types.FlightResult{
		Title:       h.Title,
		URL:         h.URL,
		Description: truncate(h.Description, maxDescription),
		Price:       ExtractPrice(h.Title + " " + h.Description),
		Site:        site,
	}, nil
}

// truncate keeps the first n runes of s and marks the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
