package search_test

import (
	"context"
	"log/slog"
	"math"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/flightfinder/internal/failure"
	"github.com/alex-user-go/flightfinder/internal/obs"
	"github.com/alex-user-go/flightfinder/internal/search"
	"github.com/alex-user-go/flightfinder/internal/search/ratelimit"
	"github.com/alex-user-go/flightfinder/internal/search/types"
	"github.com/alex-user-go/flightfinder/internal/sites"
)

type SiteSearcherMock struct {
	mock.Mock

	mu     sync.Mutex
	starts []time.Time
	order  []sites.Site
}

func (m *SiteSearcherMock) Search(ctx context.Context, p search.Params) (*types.SiteOutcome, error) {
	m.mu.Lock()
	m.starts = append(m.starts, time.Now())
	m.order = append(m.order, p.Site)
	m.mu.Unlock()

	ret := m.Called(p.Site)
	outcome, _ := ret.Get(0).(*types.SiteOutcome)
	return outcome, ret.Error(1)
}

func outcomeWith(site, cheapestPrice string) *types.SiteOutcome {
	o := &types.SiteOutcome{Site: site, Query: "q", Results: []types.FlightResult{}}
	if cheapestPrice != "" {
		r := types.FlightResult{Title: site + " deal", URL: "https://" + site + "/deal", Price: price(cheapestPrice), Site: site}
		o.Results = []types.FlightResult{r}
		o.Cheapest = &r
		o.Count = 1
	}
	return o
}

func newTestAggregator(s search.SiteSearcher, interval time.Duration) (*search.Aggregator, *obs.Metrics) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	metrics := obs.NewMetrics(logger)
	return search.NewAggregator(s, ratelimit.New(interval), metrics, logger), metrics
}

func TestBuildComparison(t *testing.T) {
	outcomes := []*types.SiteOutcome{
		outcomeWith("Skyscanner", "$300"),
		outcomeWith("Google Flights", "$250"),
		outcomeWith("Booking.com", ""),
	}

	cmp, err := search.BuildComparison(outcomes)
	require.NoError(t, err)

	require.Equal(t, types.ComparisonMode, cmp.Mode)
	require.Equal(t, 2, cmp.SitesChecked)
	require.Equal(t, "Google Flights", cmp.BestDeal.Site)
	require.Equal(t, "$250", cmp.BestDeal.Price)
	require.Equal(t, "Google Flights deal", cmp.BestDeal.Title)
	require.Equal(t, []types.ComparisonRow{
		{Site: "Google Flights", CheapestPrice: "$250", URL: "https://Google Flights/deal", IsBest: true},
		{Site: "Skyscanner", CheapestPrice: "$300", URL: "https://Skyscanner/deal", IsBest: false},
	}, cmp.Rows)
	require.Len(t, cmp.AllOutcomes, 2)
	require.Equal(t, "Skyscanner", cmp.AllOutcomes[0].Site)
	require.Equal(t, "Google Flights", cmp.AllOutcomes[1].Site)
}

func TestBuildComparison_TieGoesToSiteOrder(t *testing.T) {
	outcomes := []*types.SiteOutcome{
		outcomeWith("Skyscanner", "$400"),
		outcomeWith("Google Flights", "£199"),
		outcomeWith("Booking.com", "$199.00"),
	}

	cmp, err := search.BuildComparison(outcomes)
	require.NoError(t, err)

	require.Equal(t, "Google Flights", cmp.BestDeal.Site)
	require.Equal(t, "Google Flights", cmp.Rows[0].Site)
	require.True(t, cmp.Rows[0].IsBest)
	require.Equal(t, "Booking.com", cmp.Rows[1].Site)
	require.False(t, cmp.Rows[1].IsBest)
	require.Equal(t, "Skyscanner", cmp.Rows[2].Site)
}

func TestBuildComparison_NoResults(t *testing.T) {
	outcomes := []*types.SiteOutcome{nil, outcomeWith("Google Flights", ""), nil}

	cmp, err := search.BuildComparison(outcomes)
	require.Nil(t, cmp)

	f := failure.From(err)
	require.Equal(t, failure.NoResultsAnySite, f.Kind)
	require.Equal(t, []string{"Skyscanner", "Google Flights", "Booking.com"}, f.SitesChecked)
	require.NotEmpty(t, f.Suggestion)
}

func TestAggregator_Compare(t *testing.T) {
	m := &SiteSearcherMock{}
	m.On("Search", sites.Skyscanner).Return(outcomeWith("Skyscanner", "$300"), nil)
	m.On("Search", sites.Google).Return(outcomeWith("Google Flights", "$250"), nil)
	m.On("Search", sites.Booking).Return(outcomeWith("Booking.com", ""), nil)

	agg, _ := newTestAggregator(m, 0)
	cmp, err := agg.Compare(context.Background(), mustParams(t, sites.Compare))
	require.NoError(t, err)

	m.AssertExpectations(t)
	require.Equal(t, 2, cmp.SitesChecked)
	require.Equal(t, "Google Flights", cmp.BestDeal.Site)
	require.Equal(t, "Google Flights", cmp.Rows[0].Site)
	require.True(t, cmp.Rows[0].IsBest)
	require.False(t, cmp.Rows[1].IsBest)
}

func TestAggregator_Compare_PacesInSiteOrder(t *testing.T) {
	m := &SiteSearcherMock{}
	m.On("Search", mock.Anything).Return(outcomeWith("Skyscanner", "$300"), nil)

	interval := 60 * time.Millisecond
	agg, _ := newTestAggregator(m, interval)

	_, err := agg.Compare(context.Background(), mustParams(t, sites.Compare))
	require.NoError(t, err)

	require.Equal(t, []sites.Site{sites.Skyscanner, sites.Google, sites.Booking}, m.order)
	for i := 1; i < len(m.starts); i++ {
		gap := m.starts[i].Sub(m.starts[i-1])
		require.GreaterOrEqual(t, gap, interval-10*time.Millisecond, "requests %d and %d started %v apart", i-1, i, gap)
	}
}

func TestAggregator_Compare_PartialFailure(t *testing.T) {
	m := &SiteSearcherMock{}
	m.On("Search", sites.Skyscanner).Return(nil, failure.New(failure.Timeout, "timed out", ""))
	m.On("Search", sites.Google).Return(outcomeWith("Google Flights", "$250"), nil)
	m.On("Search", sites.Booking).Return(nil, failure.New(failure.NetworkError, "down", ""))

	agg, metrics := newTestAggregator(m, 0)
	cmp, err := agg.Compare(context.Background(), mustParams(t, sites.Compare))
	require.NoError(t, err)

	require.Equal(t, 1, cmp.SitesChecked)
	require.Equal(t, "Google Flights", cmp.BestDeal.Site)
	require.Equal(t, int64(2), metrics.Snapshot().SiteFailures)
}

func TestAggregator_Compare_AllSitesFail(t *testing.T) {
	m := &SiteSearcherMock{}
	m.On("Search", mock.Anything).Return(nil, failure.New(failure.NetworkError, "down", ""))

	agg, _ := newTestAggregator(m, 0)
	cmp, err := agg.Compare(context.Background(), mustParams(t, sites.Compare))

	require.Nil(t, cmp)
	require.ErrorIs(t, err, failure.ErrNoResultsAnySite)
	require.Equal(t, []string{"Skyscanner", "Google Flights", "Booking.com"}, failure.From(err).SitesChecked)
	m.AssertNumberOfCalls(t, "Search", 3)
}

func TestAggregator_Compare_ContextCancellation(t *testing.T) {
	m := &SiteSearcherMock{}
	m.On("Search", mock.Anything).Return(outcomeWith("Skyscanner", "$1"), nil)

	agg, _ := newTestAggregator(m, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmp, err := agg.Compare(ctx, mustParams(t, sites.Compare))
	require.Error(t, err)
	require.Nil(t, cmp)
}

func TestParsePrice_ComparisonOrdering(t *testing.T) {
	// A site whose cheapest price cannot be parsed still counts but ranks last.
	outcomes := []*types.SiteOutcome{
		outcomeWith("Skyscanner", "$,"),
		outcomeWith("Google Flights", "$900"),
		nil,
	}

	cmp, err := search.BuildComparison(outcomes)
	require.NoError(t, err)
	require.Equal(t, 2, cmp.SitesChecked)
	require.Equal(t, "Google Flights", cmp.BestDeal.Site)
	require.Equal(t, "Skyscanner", cmp.Rows[1].Site)
	require.True(t, math.IsInf(search.ParsePrice(&cmp.Rows[1].CheapestPrice), 1))
}
