package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"VolSentinel/internal/model"
)

// MemoryStore is an in-memory series cache used in tests and when no SQLite
// path is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	series   map[string][]model.Observation
	revision int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{series: make(map[string][]model.Observation)}
}

func (m *MemoryStore) Get(_ context.Context, symbol string) (model.TickerSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obs, ok := m.series[symbol]
	if !ok || len(obs) == 0 {
		return model.TickerSeries{Symbol: symbol}, ErrNotFound
	}
	out := make([]model.Observation, len(obs))
	copy(out, obs)
	return model.TickerSeries{Symbol: symbol, Observations: out}, nil
}

func (m *MemoryStore) Symbols(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	symbols := make([]string, 0, len(m.series))
	for symbol := range m.series {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (m *MemoryStore) Upsert(_ context.Context, symbol string, obs []model.Observation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	merged := make(map[string]model.Observation, len(m.series[symbol])+len(obs))
	for _, o := range m.series[symbol] {
		merged[o.Date.Format(dateLayout)] = o
	}
	for _, o := range obs {
		merged[o.Date.Format(dateLayout)] = o
	}

	out := make([]model.Observation, 0, len(merged))
	for _, o := range merged {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	m.series[symbol] = out
	m.revision++
	return nil
}

func (m *MemoryStore) Snapshot(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("mem-%d", m.revision), nil
}

func (m *MemoryStore) Close() error { return nil }
