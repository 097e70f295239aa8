package screener

import (
	"sync"

	"VolSentinel/internal/model"
)

// Cache memoizes one aggregate screener run, keyed by the store's snapshot
// identifier. The engine itself stays a pure function over (symbols, source);
// the caller decides which snapshot key identifies the current source state.
type Cache struct {
	mu       sync.Mutex
	snapshot string
	rows     []model.ScreenerRow
}

// Get returns the memoized rows when the snapshot key still matches.
func (c *Cache) Get(snapshot string) ([]model.ScreenerRow, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if snapshot == "" || snapshot != c.snapshot {
		return nil, false
	}
	return c.rows, true
}

// Put replaces the memoized rows for the given snapshot key.
func (c *Cache) Put(snapshot string, rows []model.ScreenerRow) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.rows = rows
}
