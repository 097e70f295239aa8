package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VolSentinel/internal/model"
)

func testObservations(end time.Time, n int) []model.Observation {
	obs := make([]model.Observation, n)
	for i := 0; i < n; i++ {
		obs[i] = model.Observation{
			Date:  end.AddDate(0, 0, -(n - 1 - i)),
			HV30D: model.Float(0.20 + 0.001*float64(i)),
		}
		if i%2 == 0 {
			obs[i].IV30D = model.Float(0.30)
		}
	}
	return obs
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "series.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	end := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	obs := testObservations(end, 10)
	require.NoError(t, s.Upsert(ctx, "XYZ", obs))

	series, err := s.Get(ctx, "XYZ")
	require.NoError(t, err)
	require.Len(t, series.Observations, 10)
	assert.Equal(t, "XYZ", series.Symbol)

	// Dates come back ascending with nullable columns preserved.
	for i, o := range series.Observations {
		assert.Equal(t, obs[i].Date, o.Date)
		require.NotNil(t, o.HV30D)
		assert.InDelta(t, *obs[i].HV30D, *o.HV30D, 1e-12)
		if i%2 == 0 {
			require.NotNil(t, o.IV30D)
		} else {
			assert.Nil(t, o.IV30D)
		}
	}
}

func TestSQLiteStore_UpsertReplaces(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "series.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	date := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Upsert(ctx, "XYZ", []model.Observation{
		{Date: date, HV30D: model.Float(0.20)},
	}))
	require.NoError(t, s.Upsert(ctx, "XYZ", []model.Observation{
		{Date: date, HV30D: model.Float(0.22), IV30D: model.Float(0.31)},
	}))

	series, err := s.Get(ctx, "XYZ")
	require.NoError(t, err)
	require.Len(t, series.Observations, 1)
	assert.InDelta(t, 0.22, *series.Observations[0].HV30D, 1e-12)
	require.NotNil(t, series.Observations[0].IV30D)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "series.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_SymbolsAndSnapshot(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "series.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	before, err := s.Snapshot(ctx)
	require.NoError(t, err)

	end := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Upsert(ctx, "BBB", testObservations(end, 3)))
	require.NoError(t, s.Upsert(ctx, "AAA", testObservations(end, 3)))

	symbols, err := s.Symbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB"}, symbols)

	after, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_, err := m.Get(ctx, "XYZ")
	assert.ErrorIs(t, err, ErrNotFound)

	end := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.Upsert(ctx, "XYZ", testObservations(end, 5)))

	series, err := m.Get(ctx, "XYZ")
	require.NoError(t, err)
	assert.Len(t, series.Observations, 5)

	// Merging by date keeps the series deduplicated and ascending.
	require.NoError(t, m.Upsert(ctx, "XYZ", testObservations(end.AddDate(0, 0, 2), 5)))
	series, err = m.Get(ctx, "XYZ")
	require.NoError(t, err)
	assert.Len(t, series.Observations, 7)
	for i := 1; i < len(series.Observations); i++ {
		assert.True(t, series.Observations[i-1].Date.Before(series.Observations[i].Date))
	}

	s1, _ := m.Snapshot(ctx)
	require.NoError(t, m.Upsert(ctx, "ABC", testObservations(end, 3)))
	s2, _ := m.Snapshot(ctx)
	assert.NotEqual(t, s1, s2)
}
