package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alex-user-go/flightfinder/internal/failure"
	"github.com/alex-user-go/flightfinder/internal/obs"
	"github.com/alex-user-go/flightfinder/internal/providers"
	"github.com/alex-user-go/flightfinder/internal/search/types"
	"github.com/alex-user-go/flightfinder/internal/sites"
)

// Searcher runs a search against one concrete site.
type Searcher struct {
	provider providers.Provider
	metrics  *obs.Metrics
	logger   *slog.Logger
}

// NewSearcher creates a new Searcher.
func NewSearcher(provider providers.Provider, metrics *obs.Metrics, logger *slog.Logger) *Searcher {
	return &Searcher{
		provider: provider,
		metrics:  metrics,
		logger:   logger,
	}
}

// Search queries the provider for p.Site and ranks the in-domain results.
// Provider failures are returned unchanged.
func (s *Searcher) Search(ctx context.Context, p Params) (*types.SiteOutcome, error) {
	if p.Site == sites.Compare {
		return nil, failure.New(failure.UseComparisonMode,
			"Use comparison mode to search all sites",
			"Pass the compare site selector instead of a single site")
	}

	cfg, ok := sites.Lookup(p.Site)
	if !ok {
		return nil, failure.New(failure.InvalidSiteSelector,
			fmt.Sprintf("Invalid website: %s", p.Site), "")
	}

	query := cfg.Query(p.Origin, p.Destination, p.DepartDate)
	s.metrics.IncRequests()
	s.logger.Debug("searching site", "site", cfg.Name, "query", query)

	resp, err := s.provider.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	results, skipped := Extract(resp.Hits, cfg, s.logger)
	if skipped > 0 {
		s.metrics.AddSkippedHits(skipped)
	}
	ranked, cheapest := Rank(results)

	s.logger.Debug("site search completed",
		"site", cfg.Name,
		"hits", len(resp.Hits),
		"results", len(ranked),
		"skipped", skipped,
	)

	return &types.SiteOutcome{
		Site:     cfg.Name,
		Query:    query,
		Results:  ranked,
		Cheapest: cheapest,
		Count:    len(ranked),
	}, nil
}
