package notifier

import (
	"fmt"
	"strings"
	"time"

	"VolSentinel/internal/model"
)

// FormatScreenerReport renders the ranked screener table, highest IV rank
// first. Rows beyond limit are summarized; limit <= 0 shows everything.
func FormatScreenerReport(rows []model.ScreenerRow, limit int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Volatility Screener</b> | %s\n\n", time.Now().Format("2006-01-02")))

	if len(rows) == 0 {
		b.WriteString("No tickers with sufficient volatility history.\n")
		return b.String()
	}

	shown := len(rows)
	if limit > 0 && shown > limit {
		shown = limit
	}

	b.WriteString("<pre>")
	b.WriteString(fmt.Sprintf("%-6s %7s %7s %7s\n", "TICKER", "IV", "RANK", "IV/HV"))
	for _, row := range rows[:shown] {
		b.WriteString(fmt.Sprintf("%-6s %6.1f%% %6.0f%% %6.2fx\n",
			row.Symbol, row.CurrentIV*100, row.IVRank*100, row.IVHVRatio))
	}
	b.WriteString("</pre>")

	if shown < len(rows) {
		b.WriteString(fmt.Sprintf("\n… and %d more", len(rows)-shown))
	}
	return b.String()
}

// FormatPlotReport summarizes the five chart panels for one ticker. Panels
// that resolved to nothing are reported explicitly, and the IV line only
// appears where the window actually carries IV data.
func FormatPlotReport(symbol string, panels []model.NamedWindow) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 <b>HV vs IV — %s</b>\n\n", symbol))

	for _, p := range panels {
		if !p.HasData {
			b.WriteString(fmt.Sprintf("• %s: no data for this timeframe\n", p.Label))
			continue
		}
		first := p.Observations[0].Date.Format("2006-01-02")
		last := p.Observations[len(p.Observations)-1].Date.Format("2006-01-02")
		b.WriteString(fmt.Sprintf("• %s: %d pts, %s → %s", p.Label, len(p.Observations), first, last))

		if hv := lastDefined(p.Observations, func(o model.Observation) *float64 { return o.HV30D }); hv != nil {
			b.WriteString(fmt.Sprintf(" | HV %.1f%%", *hv*100))
		}
		if p.HasIV {
			if iv := lastDefined(p.Observations, func(o model.Observation) *float64 { return o.IV30D }); iv != nil {
				b.WriteString(fmt.Sprintf(" | IV %.1f%%", *iv*100))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatWatchlist renders the current watchlist.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "Watchlist is empty. Add tickers with: /watch add SYMBOL"
	}
	return fmt.Sprintf("👁 <b>Watchlist</b> (%d)\n\n%s", len(symbols), strings.Join(symbols, ", "))
}

func lastDefined(obs []model.Observation, field func(model.Observation) *float64) *float64 {
	for i := len(obs) - 1; i >= 0; i-- {
		if v := field(obs[i]); v != nil {
			return v
		}
	}
	return nil
}
