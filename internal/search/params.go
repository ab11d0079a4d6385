package search

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alex-user-go/flightfinder/internal/failure"
	"github.com/alex-user-go/flightfinder/internal/sites"
)

// DateLayout is the accepted departure date format.
const DateLayout = "2006-01-02"

var airportCode = regexp.MustCompile(`^[A-Z]{3}$`)

// Params holds validated search parameters.
type Params struct {
	Origin      string
	Destination string
	DepartDate  string
	Site        sites.Site
}

// NewParams validates and normalizes raw trip input. now decides which
// calendar day counts as today, in its own location.
func NewParams(origin, destination, departDate string, site sites.Site, now time.Time) (Params, error) {
	o, err := normalizeAirport(origin)
	if err != nil {
		return Params{}, err
	}
	d, err := normalizeAirport(destination)
	if err != nil {
		return Params{}, err
	}
	if err := validateDate(departDate, now); err != nil {
		return Params{}, err
	}

	return Params{
		Origin:      o,
		Destination: d,
		DepartDate:  departDate,
		Site:        site,
	}, nil
}

// WithSite returns a copy of p targeting site.
func (p Params) WithSite(site sites.Site) Params {
	p.Site = site
	return p
}

func normalizeAirport(code string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(code))
	if !airportCode.MatchString(v) {
		return "", failure.New(failure.InvalidAirportCode,
			fmt.Sprintf("Invalid airport code: %s. Must be 3 letters (e.g., JFK)", v),
			"Check your airport codes (3 letters) and date format (YYYY-MM-DD)")
	}
	return v, nil
}

func validateDate(date string, now time.Time) error {
	day, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return failure.Wrap(failure.InvalidDateFormat, err,
			fmt.Sprintf("Invalid date format: %s. Must be YYYY-MM-DD (e.g., 2026-05-15)", date),
			"Check your airport codes (3 letters) and date format (YYYY-MM-DD)")
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return failure.New(failure.DateInPast,
			fmt.Sprintf("Date cannot be in the past: %s", date),
			"Pick today or a future departure date")
	}
	return nil
}
