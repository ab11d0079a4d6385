package search

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/alex-user-go/flightfinder/internal/failure"
	"github.com/alex-user-go/flightfinder/internal/obs"
	"github.com/alex-user-go/flightfinder/internal/search/ratelimit"
	"github.com/alex-user-go/flightfinder/internal/search/types"
	"github.com/alex-user-go/flightfinder/internal/sites"
)

// SiteSearcher searches a single site.
type SiteSearcher interface {
	Search(ctx context.Context, p Params) (*types.SiteOutcome, error)
}

// Aggregator compares the cheapest price across all concrete sites.
type Aggregator struct {
	searcher SiteSearcher
	pacer    *ratelimit.Pacer
	metrics  *obs.Metrics
	logger   *slog.Logger
}

// NewAggregator creates a new Aggregator. A nil pacer starts all requests at once.
func NewAggregator(searcher SiteSearcher, pacer *ratelimit.Pacer, metrics *obs.Metrics, logger *slog.Logger) *Aggregator {
	if pacer == nil {
		pacer = ratelimit.New(0)
	}
	return &Aggregator{
		searcher: searcher,
		pacer:    pacer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Compare searches every concrete site and builds the price comparison.
// Pacer slots are reserved in site order before the searches start, so
// request starts keep that order and spacing. A failing site contributes
// nothing.
func (a *Aggregator) Compare(ctx context.Context, p Params) (*types.Comparison, error) {
	order := sites.Concrete()
	outcomes := make([]*types.SiteOutcome, len(order))

	var wg sync.WaitGroup
	for i, site := range order {
		wait := a.pacer.Reserve()
		wg.Go(func() {
			if err := ratelimit.Sleep(ctx, wait); err != nil {
				a.metrics.IncSiteFailures()
				return
			}

			outcome, err := a.searcher.Search(ctx, p.WithSite(site))
			if err != nil {
				a.metrics.IncSiteFailures()
				a.logger.Warn("site search failed",
					"site", site,
					"kind", failure.KindOf(err),
					"error", err,
				)
				return
			}
			outcomes[i] = outcome
		})
	}
	wg.Wait()

	if err := context.Cause(ctx); err != nil {
		return nil, failure.From(err)
	}

	return BuildComparison(outcomes)
}

// BuildComparison keeps the outcomes that found a priced result and ranks
// them. outcomes must be in site order; ties on price go to the earlier site.
func BuildComparison(outcomes []*types.SiteOutcome) (*types.Comparison, error) {
	var retained []types.SiteOutcome
	for _, o := range outcomes {
		if o != nil && o.Cheapest != nil {
			retained = append(retained, *o)
		}
	}

	if len(retained) == 0 {
		return nil, failure.New(failure.NoResultsAnySite,
			"No results found on any of the three sites",
			"Try different dates or check the sites directly").
			WithSites(sites.Names()...)
	}

	best := retained[0]
	for _, o := range retained[1:] {
		if ParsePrice(o.Cheapest.Price) < ParsePrice(best.Cheapest.Price) {
			best = o
		}
	}

	rows := make([]types.ComparisonRow, 0, len(retained))
	for _, o := range retained {
		rows = append(rows, types.ComparisonRow{
			Site:          o.Site,
			CheapestPrice: o.Cheapest.PriceText(),
			URL:           o.Cheapest.URL,
			IsBest:        o.Site == best.Site,
		})
	}
	slices.SortStableFunc(rows, func(x, y types.ComparisonRow) int {
		px, py := ParsePrice(&x.CheapestPrice), ParsePrice(&y.CheapestPrice)
		switch {
		case px < py:
			return -1
		case px > py:
			return 1
		}
		return 0
	})

	return &types.Comparison{
		Mode:         types.ComparisonMode,
		SitesChecked: len(retained),
		Rows:         rows,
		BestDeal: types.BestDeal{
			Site:  best.Site,
			Price: best.Cheapest.PriceText(),
			URL:   best.Cheapest.URL,
			Title: best.Cheapest.Title,
		},
		AllOutcomes: retained,
	}, nil
}
