package obs

import (
	"log/slog"
	"sync/atomic"
)

// Metrics tracks per-run counters using atomic counters.
type Metrics struct {
	requests     atomic.Int64
	siteFailures atomic.Int64
	skippedHits  atomic.Int64
	logger       *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger,
	}
}

// IncRequests increments the upstream request counter.
func (m *Metrics) IncRequests() {
	m.requests.Add(1)
}

// IncSiteFailures increments the failed site search counter.
func (m *Metrics) IncSiteFailures() {
	m.siteFailures.Add(1)
}

// AddSkippedHits adds n to the skipped hit counter.
func (m *Metrics) AddSkippedHits(n int) {
	m.skippedHits.Add(int64(n))
}

// Snapshot returns current metric values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:     m.requests.Load(),
		SiteFailures: m.siteFailures.Load(),
		SkippedHits:  m.skippedHits.Load(),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	Requests     int64
	SiteFailures int64
	SkippedHits  int64
}

// LogSummary writes the snapshot at debug level.
func (m *Metrics) LogSummary() {
	s := m.Snapshot()
	m.logger.Debug("run stats",
		"requests", s.Requests,
		"site_failures", s.SiteFailures,
		"skipped_hits", s.SkippedHits,
	)
}
