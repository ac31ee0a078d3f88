// Package search is the orchestrator's view of the search index. The run
// only ever talks to the Reindexer contract; the sqlite implementation lives
// behind it.
package search

import (
	"context"
	"database/sql"

	"boardfeed-engine/internal/store"
)

type Reindexer interface {
	// ReindexAll rebuilds the entire index.
	ReindexAll(ctx context.Context) error
	// ReindexSubset refreshes the index rows for the given job ids.
	ReindexSubset(ctx context.Context, ids []int64) error
}

// StoreReindexer rebuilds the search_index table in the job store.
type StoreReindexer struct {
	DB *sql.DB
}

func (r StoreReindexer) ReindexAll(ctx context.Context) error {
	return store.RebuildSearchIndex(ctx, r.DB)
}

func (r StoreReindexer) ReindexSubset(ctx context.Context, ids []int64) error {
	return store.IndexJobs(ctx, r.DB, ids)
}
