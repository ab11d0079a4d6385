package search

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/alex-user-go/flightfinder/internal/search/types"
)

// MaxResults caps the ranked list of one site.
const MaxResults = 10

var priceCleaner = strings.NewReplacer("$", "", "£", "", "€", "", ",", "")

// ParsePrice converts price text to a number for sorting. Missing or
// unparsable prices sort last as +Inf.
func ParsePrice(price *string) float64 {
	if price == nil || *price == "" {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(priceCleaner.Replace(*price)), 64)
	if err != nil || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// Rank orders results by price ascending with priceless results last and
// caps the list at MaxResults. cheapest is the first priced result.
func Rank(results []types.FlightResult) (ranked []types.FlightResult, cheapest *types.FlightResult) {
	var priced, unpriced []types.FlightResult
	for _, r := range results {
		if r.HasPrice() {
			priced = append(priced, r)
		} else {
			unpriced = append(unpriced, r)
		}
	}

	slices.SortStableFunc(priced, func(a, b types.FlightResult) int {
		pa, pb := ParsePrice(a.Price), ParsePrice(b.Price)
		switch {
		case pa < pb:
			return -1
		case pa > pb:
			return 1
		}
		return 0
	})

	if len(priced) > 0 {
		c := priced[0]
		cheapest = &c
	}

	ranked = append(priced, unpriced...)
	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	if ranked == nil {
		ranked = []types.FlightResult{}
	}
	return ranked, cheapest
}
