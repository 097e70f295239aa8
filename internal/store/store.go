package store

import (
	"context"
	"errors"

	"VolSentinel/internal/model"
)

// ErrNotFound reports that the cache holds no series for a ticker. The
// screener treats it as an ineligible ticker, never as a batch failure.
var ErrNotFound = errors.New("ticker series not found")

// Source is the read side of the series cache consumed by the engine.
type Source interface {
	// Get returns the full daily series for one ticker, dates ascending.
	Get(ctx context.Context, symbol string) (model.TickerSeries, error)
	// Symbols lists every ticker with cached observations.
	Symbols(ctx context.Context) ([]string, error)
}

// Store extends Source with the write side used by the collector.
type Store interface {
	Source
	// Upsert inserts or replaces observations for one ticker.
	Upsert(ctx context.Context, symbol string, obs []model.Observation) error
	// Snapshot returns a version key that changes whenever cached data
	// changes. Used to memoize aggregate screener runs.
	Snapshot(ctx context.Context) (string, error)
	Close() error
}
