package plot

import (
	"VolSentinel/internal/model"
	"VolSentinel/internal/window"
)

// Build resolves the five standard timeframes for one ticker and returns them
// in fixed display order. A timeframe that resolves to nothing is returned as
// a tagged "no data" panel; it never blanks the other panels, and the function
// never fails.
func Build(series model.TickerSeries) []model.NamedWindow {
	specs := window.Specs()
	panels := make([]model.NamedWindow, 0, len(specs))

	for _, spec := range specs {
		obs := window.Resolve(series, spec)
		panels = append(panels, model.NamedWindow{
			Label:        spec.Label,
			Observations: obs,
			HasData:      len(obs) > 0,
			HasIV:        hasIV(obs),
		})
	}
	return panels
}

// hasIV reports whether at least one observation carries a defined IV value.
// The HV line is always expected to be plottable; the IV line is optional
// because a ticker may predate its implied-volatility history.
func hasIV(obs []model.Observation) bool {
	for _, o := range obs {
		if o.IV30D != nil {
			return true
		}
	}
	return false
}
