package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"VolSentinel/internal/calculator"
	"VolSentinel/internal/model"
	"VolSentinel/internal/store"
)

// hvWindow is the number of trailing log returns behind each HV_30D value.
const hvWindow = 30

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Closes []ClosePoint
	IVs    []IVPoint
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ string, days int) ([]ClosePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Closes != nil {
		return m.Closes, nil
	}
	return generateMockCloses(100, days), nil
}

func (m *MockFetcher) FetchIVSeries(_ string, _ int) ([]IVPoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.IVs == nil {
		return nil, ErrIVUnavailable
	}
	return m.IVs, nil
}

func generateMockCloses(basePrice float64, count int) []ClosePoint {
	points := make([]ClosePoint, count)
	now := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < count; i++ {
		points[i] = ClosePoint{
			Date:  now.AddDate(0, 0, -(count - 1 - i)),
			Close: basePrice * (1 + 0.002*math.Sin(float64(i))),
		}
	}
	return points
}

// Collector refreshes the cached volatility series for a set of tickers.
type Collector struct {
	Fetcher     Fetcher
	Store       store.Store
	HistoryDays int
	Concurrency int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, st store.Store, historyDays, concurrency int) *Collector {
	if historyDays <= 0 {
		historyDays = 1900 // enough closes for the 5-year chart window
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Collector{Fetcher: fetcher, Store: st, HistoryDays: historyDays, Concurrency: concurrency}
}

// Refresh updates the cache for every symbol. Symbols are fetched concurrently;
// a failing symbol is logged and skipped so one bad ticker never aborts the
// refresh. Only context cancellation is returned as an error.
func (c *Collector) Refresh(ctx context.Context, symbols []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.refreshSymbol(ctx, symbol); err != nil {
				log.Warn().Str("symbol", symbol).Err(err).Msg("refresh skipped")
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *Collector) refreshSymbol(ctx context.Context, symbol string) error {
	closes, err := c.Fetcher.FetchDailyCloses(symbol, c.HistoryDays)
	if err != nil {
		return fmt.Errorf("fetch closes: %w", err)
	}

	ivs, err := c.Fetcher.FetchIVSeries(symbol, c.HistoryDays)
	if err != nil && !errors.Is(err, ErrIVUnavailable) {
		// IV vendors fail independently of the price source; an HV-only
		// refresh is still worth caching.
		log.Warn().Str("symbol", symbol).Err(err).Msg("iv series unavailable, caching HV only")
		ivs = nil
	}

	obs := BuildObservations(closes, ivs)
	if len(obs) == 0 {
		return fmt.Errorf("no observations built from %d closes", len(closes))
	}

	if err := c.Store.Upsert(ctx, symbol, obs); err != nil {
		return fmt.Errorf("upsert series: %w", err)
	}
	log.Debug().Str("symbol", symbol).Int("observations", len(obs)).
		Str("source", c.Fetcher.Name()).Msg("series refreshed")
	return nil
}

// BuildObservations merges a close series and an optional IV series into daily
// observations keyed by the trading dates of the closes. HV_30D is the rolling
// annualized volatility of the trailing 30 log returns; dates without a full
// window carry no HV, dates without a vendor IV reading carry no IV.
func BuildObservations(closes []ClosePoint, ivs []IVPoint) []model.Observation {
	if len(closes) == 0 {
		return nil
	}

	values := make([]float64, len(closes))
	for i, p := range closes {
		values[i] = p.Close
	}
	vols := calculator.RollingVol(values, hvWindow)

	ivByDate := make(map[string]float64, len(ivs))
	for _, p := range ivs {
		ivByDate[p.Date.Format("2006-01-02")] = p.IV
	}

	obs := make([]model.Observation, 0, len(closes))
	for i, p := range closes {
		o := model.Observation{Date: p.Date}
		if !math.IsNaN(vols[i]) {
			o.HV30D = model.Float(vols[i])
		}
		if iv, ok := ivByDate[p.Date.Format("2006-01-02")]; ok {
			o.IV30D = model.Float(iv)
		}
		obs = append(obs, o)
	}
	return obs
}
