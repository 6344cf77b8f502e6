package mapdata

import (
	"github.com/pfrederiksen/parkrun-map/internal/course"
	"github.com/pfrederiksen/parkrun-map/internal/event"
)

// NoPersonalBest is the sentinel shown for venues the runner has never
// visited
const NoPersonalBest = "N/A"

// MergedRow is one output row for the rendering layer: a known venue plus
// the runner's (possibly empty) record there
type MergedRow struct {
	EventName    string  `json:"event_name"`
	Country      string  `json:"country"`
	EventTitle   string  `json:"event_title"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RunCount     int     `json:"run_count"`
	PersonalBest string  `json:"personal_best"`
}

// aggregate collapses repeat history rows for the same venue key into one:
// run counts sum, the fastest personal best wins
type aggregate struct {
	runCount     int
	personalBest string
}

// Merge right-joins a runner's history against the venue cache: exactly one
// row per venue, in venue order. Venues the runner never visited get the
// zero-run defaults. History rows with no matching venue are dropped;
// reconciliation runs before the merge, so by the time we get here every
// event the runner ran resolves to a venue.
func Merge(history []event.Record, venues []course.Venue) []MergedRow {
	byKey := aggregateHistory(history)

	rows := make([]MergedRow, 0, len(venues))
	for _, v := range venues {
		row := MergedRow{
			EventName:    v.EventName,
			Country:      v.Country,
			EventTitle:   v.EventTitle,
			Latitude:     v.Latitude,
			Longitude:    v.Longitude,
			RunCount:     0,
			PersonalBest: NoPersonalBest,
		}
		if agg, ok := byKey[v.Key()]; ok {
			row.RunCount = agg.runCount
			row.PersonalBest = agg.personalBest
		}
		rows = append(rows, row)
	}

	return rows
}

// aggregateHistory pre-aggregates history so the join is one-to-one by key
func aggregateHistory(history []event.Record) map[event.Key]aggregate {
	byKey := make(map[event.Key]aggregate, len(history))
	for _, rec := range history {
		agg, ok := byKey[rec.Key()]
		if !ok {
			byKey[rec.Key()] = aggregate{runCount: rec.RunCount, personalBest: rec.PersonalBest}
			continue
		}

		agg.runCount += rec.RunCount
		if event.LessDuration(rec.PersonalBest, agg.personalBest) {
			agg.personalBest = rec.PersonalBest
		}
		byKey[rec.Key()] = agg
	}
	return byKey
}
