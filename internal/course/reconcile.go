package course

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/parkrun-map/internal/event"
)

// VenueFetcher resolves a venue's display title and coordinates from the
// origin site. Implemented by the scraper; a test double stands in for it
// in unit tests.
type VenueFetcher interface {
	FetchVenue(ctx context.Context, eventName, country string) (Venue, error)
}

// Reconciler detects venues referenced by a runner's history that are absent
// from the cache, fetches them, and appends them in a single batch
type Reconciler struct {
	store   Store
	fetcher VenueFetcher
}

// NewReconciler creates a Reconciler over the given store and fetcher
func NewReconciler(store Store, fetcher VenueFetcher) *Reconciler {
	return &Reconciler{store: store, fetcher: fetcher}
}

// Reconcile ensures every venue in history is present in the cache and
// returns the full (possibly just-updated) venue list.
//
// Missing venues are fetched in encounter order, deduplicated, and appended
// with exactly one destructive cache rewrite per call. If any single fetch
// fails, the whole reconciliation fails and the cache is left untouched: a
// half-written batch would hand the next reader an inconsistent cache.
func (r *Reconciler) Reconcile(ctx context.Context, history []event.Record) ([]Venue, error) {
	cached, err := r.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading venue cache: %w", err)
	}

	known := make(map[event.Key]bool, len(cached))
	for _, v := range cached {
		known[v.Key()] = true
	}

	var missing []event.Key
	seen := make(map[event.Key]bool)
	for _, rec := range history {
		key := rec.Key()
		if known[key] || seen[key] {
			continue
		}
		seen[key] = true
		missing = append(missing, key)
	}

	if len(missing) == 0 {
		return cached, nil
	}

	batch := make([]Venue, 0, len(missing))
	for _, key := range missing {
		venue, err := r.fetcher.FetchVenue(ctx, key.EventName, key.Country)
		if err != nil {
			return nil, fmt.Errorf("fetching venue %s/%s: %w", key.Country, key.EventName, err)
		}
		batch = append(batch, venue)
	}

	updated, err := r.store.AppendAndResort(batch)
	if err != nil {
		return nil, err
	}

	return updated, nil
}
