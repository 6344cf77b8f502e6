// Package course manages the venue cache: the persisted table of every
// known course, its display title, and its coordinates.
//
// The cache is append-only and shared across runner queries. Reads and
// writes go through the Store interface so the flat-file backing can be
// swapped for an object-store-backed one; the Reconciler backfills venues a
// runner's history references that the cache has not seen yet.
package course
