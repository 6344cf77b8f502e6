package cli

import (
	"context"

	"github.com/pfrederiksen/parkrun-map/internal/event"
	"github.com/pfrederiksen/parkrun-map/internal/shard"
)

// shardFetcher adapts the digit-sharded local table to the history-fetcher
// contract
type shardFetcher struct {
	root string
}

func (f shardFetcher) FetchHistory(_ context.Context, athleteID int) ([]event.Record, error) {
	return shard.Read(athleteID, f.root)
}
