package mapdata

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/parkrun-map/internal/course"
	"github.com/pfrederiksen/parkrun-map/internal/event"
	"github.com/pfrederiksen/parkrun-map/internal/logger"
)

// HistoryFetcher produces a runner's event history. Implemented by the live
// scraper and by the shard-backed local reader.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, athleteID int) ([]event.Record, error)
}

// Service drives one athlete query end to end: fetch history, reconcile
// the venue cache, merge. The store handle is shared mutable state across
// queries; the service itself holds no per-request state.
type Service struct {
	fetcher    HistoryFetcher
	reconciler *course.Reconciler
	log        *logger.Logger
}

// NewService wires a Service from its collaborators
func NewService(fetcher HistoryFetcher, store course.Store, venues course.VenueFetcher, log *logger.Logger) *Service {
	return &Service{
		fetcher:    fetcher,
		reconciler: course.NewReconciler(store, venues),
		log:        log,
	}
}

// AthleteAndCourseData returns one merged row per known venue for the given
// athlete. Every call re-derives the full view: fresh history fetch,
// reconciliation of any unseen venues, right join against the cache. Any
// stage failing fails the whole call; there is no partial merge.
func (s *Service) AthleteAndCourseData(ctx context.Context, athleteID int) ([]MergedRow, error) {
	history, err := s.fetcher.FetchHistory(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("fetching athlete %d history: %w", athleteID, err)
	}
	s.log.Info("fetched athlete history", logger.Fields{
		"athlete_id": athleteID,
		"events":     len(history),
	})

	venues, err := s.reconciler.Reconcile(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("reconciling venue cache: %w", err)
	}
	s.log.Info("venue cache reconciled", logger.Fields{
		"athlete_id": athleteID,
		"venues":     len(venues),
	})

	return Merge(history, venues), nil
}
