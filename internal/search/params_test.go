package search_test

import (
	"testing"
	"time"

	"github.com/alex-user-go/flightfinder/internal/failure"
	"github.com/alex-user-go/flightfinder/internal/search"
	"github.com/alex-user-go/flightfinder/internal/sites"
)

var testNow = time.Date(2026, 5, 10, 15, 30, 0, 0, time.Local)

func TestNewParams_AirportCodes(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"JFK", "JFK", false},
		{"jfk", "JFK", false},
		{" lhr ", "LHR", false},
		{"\tcDg\n", "CDG", false},
		{"JF", "", true},
		{"JFKX", "", true},
		{"J1K", "", true},
		{"", "", true},
		{"ÉCU", "", true},
		{"J K", "", true},
	}

	for _, tt := range tests {
		p, err := search.NewParams(tt.input, "LHR", "2026-05-15", sites.Skyscanner, testNow)
		if tt.wantErr {
			if failure.KindOf(err) != failure.InvalidAirportCode {
				t.Errorf("origin %q: expected InvalidAirportCode, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("origin %q: unexpected error: %v", tt.input, err)
			continue
		}
		if p.Origin != tt.want {
			t.Errorf("origin %q normalized to %q, want %q", tt.input, p.Origin, tt.want)
		}
	}

	if _, err := search.NewParams("JFK", "12", "2026-05-15", sites.Google, testNow); failure.KindOf(err) != failure.InvalidAirportCode {
		t.Errorf("destination: expected InvalidAirportCode, got %v", err)
	}
}

func TestNewParams_Dates(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		wantKind failure.Kind
	}{
		{"today", "2026-05-10", ""},
		{"tomorrow", "2026-05-11", ""},
		{"far future", "2030-01-01", ""},
		{"yesterday", "2026-05-09", failure.DateInPast},
		{"last year", "2025-12-31", failure.DateInPast},
		{"slashes", "2026/05/15", failure.InvalidDateFormat},
		{"day first", "15-05-2026", failure.InvalidDateFormat},
		{"not a date", "tomorrow", failure.InvalidDateFormat},
		{"impossible day", "2026-02-30", failure.InvalidDateFormat},
		{"empty", "", failure.InvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := search.NewParams("JFK", "LHR", tt.date, sites.Skyscanner, testNow)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if p.DepartDate != tt.date {
					t.Errorf("DepartDate = %q, want %q", p.DepartDate, tt.date)
				}
				return
			}
			if got := failure.KindOf(err); got != tt.wantKind {
				t.Errorf("kind = %s, want %s (err: %v)", got, tt.wantKind, err)
			}
		})
	}
}

func TestParams_WithSite(t *testing.T) {
	p, err := search.NewParams("jfk", "lhr", "2026-05-15", sites.Compare, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := p.WithSite(sites.Google)
	if g.Site != sites.Google || p.Site != sites.Compare {
		t.Errorf("WithSite mutated the original: p=%v g=%v", p.Site, g.Site)
	}
	if g.Origin != "JFK" || g.Destination != "LHR" {
		t.Errorf("WithSite lost trip fields: %+v", g)
	}
}
