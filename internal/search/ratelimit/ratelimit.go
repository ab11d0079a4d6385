package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Pacer spaces out request starts so that at most one request begins per
// interval. Slots are handed out in reservation order.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	now      func() time.Time
}

// New creates a new Pacer. A non-positive interval disables pacing.
func New(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		now:      time.Now,
	}
}

// Interval returns the configured spacing.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Reserve claims the next slot and returns how long the caller must wait
// before starting its request.
func (p *Pacer) Reserve() time.Duration {
	if p.interval <= 0 {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.next.Before(now) {
		p.next = now
	}
	wait := p.next.Sub(now)
	p.next = p.next.Add(p.interval)
	return wait
}

// Wait reserves a slot and blocks until it starts or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return Sleep(ctx, p.Reserve())
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return context.Cause(ctx)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}
