// Package shard reads athlete history from a locally partitioned table.
//
// The table is digit-sharded: each directory level below the root selects
// one digit of the zero-padded athlete-id suffix, so a lookup touches
// exactly one partition instead of scanning the whole table. This is the
// alternate backend for pre-exported local datasets; the live scraper is
// the primary source.
package shard
