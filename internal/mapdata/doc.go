// Package mapdata produces the dataset the map rendering layer consumes.
//
// Service is the single entry point per athlete query: it fetches the
// runner's history, reconciles the venue cache (backfilling any course the
// cache has not seen), and right-joins history against the cache so every
// known venue yields exactly one row, visited or not.
package mapdata
