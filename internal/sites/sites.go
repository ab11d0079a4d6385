// Package sites holds the static registry of supported flight booking sites.
package sites

import (
	"fmt"
	"strings"

	"github.com/alex-user-go/flightfinder/internal/failure"
)

// Site selects which booking site to search. Compare is the pseudo-site that
// searches all concrete sites.
type Site string

const (
	Skyscanner Site = "skyscanner"
	Google     Site = "google"
	Booking    Site = "booking"
	Compare    Site = "compare"
)

// Config describes how to search one booking site.
type Config struct {
	Domain        string
	Name          string
	QueryTemplate string
}

var registry = map[Site]Config{
	Skyscanner: {
		Domain:        "skyscanner.com",
		Name:          "Skyscanner",
		QueryTemplate: "site:skyscanner.com direct flights {origin} to {destination} {date}",
	},
	Google: {
		Domain:        "google.com/travel/flights",
		Name:          "Google Flights",
		QueryTemplate: "site:google.com/travel/flights direct flights {origin} to {destination} {date}",
	},
	Booking: {
		Domain:        "booking.com/flights",
		Name:          "Booking.com",
		QueryTemplate: "site:booking.com/flights direct {origin} to {destination} {date}",
	},
}

// Concrete returns the searchable sites in comparison order.
func Concrete() []Site {
	return []Site{Skyscanner, Google, Booking}
}

// All returns every accepted selector value, Compare last.
func All() []Site {
	return append(Concrete(), Compare)
}

// Names returns the display names of the concrete sites in comparison order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, s := range Concrete() {
		names = append(names, registry[s].Name)
	}
	return names
}

// Parse resolves a case-insensitive selector.
func Parse(s string) (Site, error) {
	site := Site(strings.ToLower(strings.TrimSpace(s)))
	switch site {
	case Skyscanner, Google, Booking, Compare:
		return site, nil
	}

	valid := make([]string, 0, 4)
	for _, v := range All() {
		valid = append(valid, string(v))
	}
	return "", failure.New(failure.InvalidSiteSelector,
		fmt.Sprintf("Invalid website: %s", s),
		fmt.Sprintf("Use one of: %s", strings.Join(valid, ", ")))
}

// Lookup returns the configuration for a concrete site.
func Lookup(s Site) (Config, bool) {
	cfg, ok := registry[s]
	return cfg, ok
}

// Query renders the search query for a trip.
func (c Config) Query(origin, destination, date string) string {
	return strings.NewReplacer(
		"{origin}", origin,
		"{destination}", destination,
		"{date}", date,
	).Replace(c.QueryTemplate)
}
