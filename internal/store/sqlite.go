package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"VolSentinel/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore caches per-ticker volatility series in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the screener can read while a refresh writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite series store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS observations (
			symbol     TEXT NOT NULL,
			date       TEXT NOT NULL,
			hv30       REAL,
			iv30       REAL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_obs_symbol ON observations(symbol)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Get returns the full cached series for one ticker, dates ascending.
func (s *SQLiteStore) Get(ctx context.Context, symbol string) (model.TickerSeries, error) {
	series := model.TickerSeries{Symbol: symbol}

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, hv30, iv30 FROM observations WHERE symbol = ? ORDER BY date`, symbol)
	if err != nil {
		return series, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			dateStr string
			hv, iv  sql.NullFloat64
		)
		if err := rows.Scan(&dateStr, &hv, &iv); err != nil {
			return series, fmt.Errorf("scan observation: %w", err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return series, fmt.Errorf("parse date %q: %w", dateStr, err)
		}
		obs := model.Observation{Date: date}
		if hv.Valid {
			obs.HV30D = model.Float(hv.Float64)
		}
		if iv.Valid {
			obs.IV30D = model.Float(iv.Float64)
		}
		series.Observations = append(series.Observations, obs)
	}
	if err := rows.Err(); err != nil {
		return series, fmt.Errorf("iterate observations: %w", err)
	}
	if len(series.Observations) == 0 {
		return series, ErrNotFound
	}
	return series, nil
}

// Symbols lists every ticker with cached observations.
func (s *SQLiteStore) Symbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM observations ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}
	return symbols, rows.Err()
}

// Upsert inserts or replaces observations for one ticker in a single transaction.
func (s *SQLiteStore) Upsert(ctx context.Context, symbol string, obs []model.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO observations (symbol, date, hv30, iv30, updated_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			hv30 = excluded.hv30,
			iv30 = excluded.iv30,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, o := range obs {
		var hv, iv interface{}
		if o.HV30D != nil {
			hv = *o.HV30D
		}
		if o.IV30D != nil {
			iv = *o.IV30D
		}
		if _, err := stmt.ExecContext(ctx, symbol, o.Date.Format(dateLayout), hv, iv, now); err != nil {
			return fmt.Errorf("upsert %s %s: %w", symbol, o.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

// Snapshot returns a version key derived from the latest write time and the
// total row count. It changes on every refresh that touches data.
func (s *SQLiteStore) Snapshot(ctx context.Context) (string, error) {
	var maxUpdated, count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(updated_at), 0), COUNT(*) FROM observations`).Scan(&maxUpdated, &count)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return fmt.Sprintf("%d-%d", maxUpdated, count), nil
}

func (s *SQLiteStore) Close() error {
	log.Info().Msg("closing sqlite series store")
	return s.db.Close()
}
