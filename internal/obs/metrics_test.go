package obs_test

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/alex-user-go/flightfinder/internal/obs"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := obs.NewMetrics(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Go(func() {
			m.IncRequests()
			m.AddSkippedHits(2)
		})
	}
	wg.Wait()
	m.IncSiteFailures()

	s := m.Snapshot()
	if s.Requests != 50 {
		t.Errorf("Requests = %d, want 50", s.Requests)
	}
	if s.SkippedHits != 100 {
		t.Errorf("SkippedHits = %d, want 100", s.SkippedHits)
	}
	if s.SiteFailures != 1 {
		t.Errorf("SiteFailures = %d, want 1", s.SiteFailures)
	}
}

func TestMetrics_LogSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := obs.NewMetrics(logger)
	m.IncRequests()

	m.LogSummary()

	out := buf.String()
	if !strings.Contains(out, "run stats") || !strings.Contains(out, "requests=1") {
		t.Errorf("unexpected summary log: %s", out)
	}
}
