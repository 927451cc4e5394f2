// Package store persists trending snapshots behind one contract with two
// interchangeable backends: a monthly JSON file and a Mongo collection. Both
// must produce observably equivalent Read results for equivalent data.
package store

import (
	"context"

	"github.com/thep200/trending-crawler/internal/model"
)

type Store interface {
	// Upsert writes or replaces the snapshot matching its composite key
	// (language, type, since, day).
	Upsert(ctx context.Context, snapshot model.TrendingSnapshot) error

	// Read returns every snapshot matching the query. All query fields are
	// optional and conjunctive; no implicit limit is applied.
	Read(ctx context.Context, query model.Query) ([]model.TrendingSnapshot, error)
}
