// Package event defines the runner-history data model.
//
// A Record is one row of a runner's event-summary table: the venue slug, the
// country its site belongs to, the number of runs there, and the personal
// best time. Records are derived from a live scrape (or a local partitioned
// table) on every request and are never persisted.
package event
