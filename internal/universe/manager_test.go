package universe

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SeedAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")

	m, err := NewManager(path, []string{"spy", "QQQ", "spy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"QQQ", "SPY"}, m.Symbols())

	// Reloading keeps the persisted list and ignores the seed.
	m2, err := NewManager(path, []string{"IWM"})
	require.NoError(t, err)
	assert.Equal(t, []string{"QQQ", "SPY"}, m2.Symbols())
}

func TestManager_AddRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	m, err := NewManager(path, nil)
	require.NoError(t, err)

	assert.True(t, m.Add("tsla"))
	assert.False(t, m.Add("TSLA")) // duplicate
	assert.False(t, m.Add("  "))   // blank
	assert.Equal(t, []string{"TSLA"}, m.Symbols())

	assert.True(t, m.Remove("tsla"))
	assert.False(t, m.Remove("TSLA"))
	assert.Empty(t, m.Symbols())
}

func TestManager_SymbolsIsACopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	m, err := NewManager(path, []string{"SPY"})
	require.NoError(t, err)

	symbols := m.Symbols()
	symbols[0] = "MUTATED"
	assert.Equal(t, []string{"SPY"}, m.Symbols())
}
