package scraper

import (
	"context"
	"math/rand"
	"time"
)

// DelayPolicy bounds the randomized politeness delay inserted before venue
// page fetches. The origin site runs anti-scraping defenses; spacing
// requests out by a few seconds keeps the scraper under its radar. The zero
// value sleeps not at all, which is what tests want.
type DelayPolicy struct {
	Min time.Duration
	Max time.Duration
}

// DefaultDelayPolicy returns the production politeness bounds
func DefaultDelayPolicy() DelayPolicy {
	return DelayPolicy{Min: 2 * time.Second, Max: 4 * time.Second}
}

// DefaultBatchDelayPolicy returns the shorter delay inserted once per venue
// fetch, on top of the per-page delays, spacing out reconciliation batches
func DefaultBatchDelayPolicy() DelayPolicy {
	return DelayPolicy{Min: 0, Max: time.Second}
}

// Sleep blocks for a uniformly random duration within the policy's bounds,
// or until the context is cancelled
func (p DelayPolicy) Sleep(ctx context.Context) error {
	d := p.Min
	if p.Max > p.Min {
		d += time.Duration(rand.Int63n(int64(p.Max - p.Min)))
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
