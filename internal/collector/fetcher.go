package collector

import (
	"errors"
	"time"
)

// ErrIVUnavailable marks a source that cannot serve implied volatility. The
// collector then caches an HV-only series for the ticker.
var ErrIVUnavailable = errors.New("iv series unavailable from this source")

// ClosePoint is one daily closing price.
type ClosePoint struct {
	Date  time.Time
	Close float64
}

// IVPoint is one daily 30-day implied volatility reading (annualized fraction).
type IVPoint struct {
	Date time.Time
	IV   float64
}

// Fetcher defines the interface for fetching raw market data.
type Fetcher interface {
	FetchDailyCloses(symbol string, days int) ([]ClosePoint, error)
	FetchIVSeries(symbol string, days int) ([]IVPoint, error)
	Name() string
}
