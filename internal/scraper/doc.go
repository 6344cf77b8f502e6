// Package scraper fetches and parses pages from parkrun country sites.
//
// Two scrapes live here: the athlete results-summary table (one record per
// venue a runner has visited) and the venue lookup (display title from the
// latest-results page, coordinates from the course page's embedded map
// widget). Both are position- and structure-sensitive HTML parsing against
// an unversioned external contract, so every layout assumption is kept in
// this one package and any drift surfaces as a typed error rather than a
// silently skipped row.
//
// Venue fetches are preceded by randomized politeness delays; see
// DelayPolicy.
package scraper
