package catalog

import (
	"context"
	"sync"
	"time"
)

// pacer enforces a minimum interval between consecutive calls to the same
// storefront. Different storefronts proceed independently.
type pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{interval: interval, last: make(map[string]time.Time)}
}

func (p *pacer) wait(ctx context.Context, country string) error {
	if p == nil || p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	now := time.Now()
	next := p.last[country].Add(p.interval)
	if next.Before(now) {
		next = now
	}
	p.last[country] = next
	p.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
