// Package cli implements the parkrun-map command line interface.
//
// The root command wires the scraper (or the shard-backed local reader),
// the venue cache file store, and the merge service together, then writes
// the merged dataset as text or JSON.
package cli
