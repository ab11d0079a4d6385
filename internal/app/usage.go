package app

import (
	"fmt"
	"time"

	"github.com/alex-user-go/flightfinder/internal/search"
	"github.com/alex-user-go/flightfinder/internal/sites"
)

type usage struct {
	Error    string            `json:"error"`
	Usage    string            `json:"usage"`
	Examples []string          `json:"examples"`
	Sites    map[string]string `json:"sites"`
}

var siteDescriptions = map[sites.Site]string{
	sites.Skyscanner: "Default - best price comparison",
	sites.Google:     "Google Flights",
	sites.Booking:    "Booking.com",
	sites.Compare:    "Search all sites and compare prices",
}

// newUsage builds the usage object with example dates a month after now.
func newUsage(now time.Time) usage {
	date := now.AddDate(0, 1, 0).Format(search.DateLayout)

	u := usage{
		Error: "Invalid usage",
		Usage: "flightfinder <origin> <destination> <date> [site]",
		Examples: []string{
			fmt.Sprintf("flightfinder JFK LHR %s", date),
			fmt.Sprintf("flightfinder JFK LHR %s google", date),
			fmt.Sprintf("flightfinder LAX NRT %s compare", date),
		},
		Sites: make(map[string]string, len(siteDescriptions)),
	}
	for _, s := range sites.All() {
		u.Sites[string(s)] = siteDescriptions[s]
	}
	return u
}
