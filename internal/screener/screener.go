package screener

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"VolSentinel/internal/calculator"
	"VolSentinel/internal/model"
	"VolSentinel/internal/store"
)

// Scan computes per-ticker screener results across the watchlist. A ticker the
// source cannot serve becomes a NotFound result; nothing short of context
// cancellation stops the batch.
func Scan(ctx context.Context, symbols []string, src store.Source) ([]model.TickerResult, error) {
	results := make([]model.TickerResult, 0, len(symbols))
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		series, err := src.Get(ctx, symbol)
		if err != nil {
			log.Debug().Str("symbol", symbol).Err(err).Msg("series unavailable")
			results = append(results, model.TickerResult{
				Symbol: symbol,
				Reason: model.ReasonNotFound,
			})
			continue
		}
		results = append(results, calculator.Compute(series))
	}
	return results, nil
}

// Rows extracts the eligible rows and sorts them by IV rank descending. The
// sort is stable, so rank ties retain scan order. Skipped tickers carry their
// reason in the input and never reach this table.
func Rows(results []model.TickerResult) []model.ScreenerRow {
	rows := make([]model.ScreenerRow, 0, len(results))
	for _, r := range results {
		if r.Eligible() {
			rows = append(rows, *r.Row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].IVRank > rows[j].IVRank
	})
	return rows
}
