package model

import "time"

// WatchlistState is the persisted set of tickers the screener covers.
type WatchlistState struct {
	Symbols   []string  `json:"symbols"`
	UpdatedAt time.Time `json:"updated_at"`
}
