package universe

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"VolSentinel/internal/model"
)

// Manager guards the persisted watchlist with concurrency safety. Symbols are
// stored upper-cased and deduplicated.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchlistState
	filePath string
}

// NewManager creates a Manager, loading or seeding state from disk.
func NewManager(filePath string, seed []string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}

	m := &Manager{state: state, filePath: filePath}
	if len(state.Symbols) == 0 && len(seed) > 0 {
		for _, symbol := range seed {
			m.insert(symbol)
		}
	}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Symbols returns a copy of the current watchlist, sorted.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.state.Symbols))
	copy(out, m.state.Symbols)
	return out
}

// Add inserts a symbol. Reports whether the watchlist changed.
func (m *Manager) Add(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.insert(symbol) {
		return false
	}
	if err := m.save(); err != nil {
		log.Error().Err(err).Msg("failed to save watchlist")
	}
	return true
}

// Remove deletes a symbol. Reports whether the watchlist changed.
func (m *Manager) Remove(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbol = normalize(symbol)
	for i, s := range m.state.Symbols {
		if s == symbol {
			m.state.Symbols = append(m.state.Symbols[:i], m.state.Symbols[i+1:]...)
			if err := m.save(); err != nil {
				log.Error().Err(err).Msg("failed to save watchlist")
			}
			return true
		}
	}
	return false
}

func (m *Manager) insert(symbol string) bool {
	symbol = normalize(symbol)
	if symbol == "" {
		return false
	}
	for _, s := range m.state.Symbols {
		if s == symbol {
			return false
		}
	}
	m.state.Symbols = append(m.state.Symbols, symbol)
	sort.Strings(m.state.Symbols)
	return true
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
