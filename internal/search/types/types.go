package types

// FlightResult is one in-domain listing extracted from a search hit.
type FlightResult struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Price       *string `json:"price"`
	Site        string  `json:"site"`
}

// HasPrice reports whether a price was extracted.
func (r FlightResult) HasPrice() bool {
	return r.Price != nil
}

// PriceText returns the price or "" when absent.
func (r FlightResult) PriceText() string {
	if r.Price == nil {
		return ""
	}
	return *r.Price
}

// SiteOutcome is the ranked result set for one site.
type SiteOutcome struct {
	Site     string         `json:"site"`
	Query    string         `json:"query"`
	Results  []FlightResult `json:"results"`
	Cheapest *FlightResult  `json:"cheapest"`
	Count    int            `json:"count"`
}

// ComparisonRow is one line of the cross-site price table.
type ComparisonRow struct {
	Site          string `json:"site"`
	CheapestPrice string `json:"cheapestPrice"`
	URL           string `json:"url"`
	IsBest        bool   `json:"isBest"`
}

// BestDeal is the globally cheapest listing.
type BestDeal struct {
	Site  string `json:"site"`
	Price string `json:"price"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ComparisonMode is the mode tag of a Comparison.
const ComparisonMode = "comparison"

// Comparison aggregates the per-site outcomes that produced a priced result.
type Comparison struct {
	Mode         string          `json:"mode"`
	SitesChecked int             `json:"sitesChecked"`
	Rows         []ComparisonRow `json:"comparison"`
	BestDeal     BestDeal        `json:"bestDeal"`
	AllOutcomes  []SiteOutcome   `json:"allOutcomes"`
}
