package calculator

import (
	"gonum.org/v1/gonum/floats"

	"VolSentinel/internal/model"
	"VolSentinel/internal/window"
)

// MinWindowObservations is the eligibility floor for the screener: with fewer
// points in the trailing year, min/max-based rank statistics are unreliable.
const MinWindowObservations = 20

// Compute derives the screener metrics for one ticker from its trailing 1-year
// window. Bad or incomplete data never produces an error: the result carries a
// skip reason instead, so one ticker cannot abort a batch scan.
func Compute(series model.TickerSeries) model.TickerResult {
	result := model.TickerResult{Symbol: series.Symbol}

	win := window.Resolve(series, window.Spec1Y)
	if len(win) < MinWindowObservations {
		result.Reason = model.ReasonInsufficientHistory
		return result
	}

	ivs := definedIVs(win)
	if len(ivs) == 0 || !hasHV(win) {
		result.Reason = model.ReasonInsufficientHistory
		return result
	}

	last := win[len(win)-1]

	// IV rank: position of the current IV within the window's [min,max] range.
	// A flat IV history has no rank, which excludes the ticker rather than
	// dividing by zero.
	ivLow, ivHigh := floats.Min(ivs), floats.Max(ivs)
	if last.IV30D == nil || ivHigh <= ivLow {
		result.Reason = model.ReasonDegenerateMetric
		return result
	}
	currentIV := *last.IV30D
	ivRank := (currentIV - ivLow) / (ivHigh - ivLow)

	if last.HV30D == nil || *last.HV30D == 0 {
		result.Reason = model.ReasonDegenerateMetric
		return result
	}

	result.Row = &model.ScreenerRow{
		Symbol:    series.Symbol,
		CurrentIV: currentIV,
		IVRank:    ivRank,
		IVHVRatio: currentIV / *last.HV30D,
	}
	return result
}

func definedIVs(obs []model.Observation) []float64 {
	ivs := make([]float64, 0, len(obs))
	for _, o := range obs {
		if o.IV30D != nil {
			ivs = append(ivs, *o.IV30D)
		}
	}
	return ivs
}

func hasHV(obs []model.Observation) bool {
	for _, o := range obs {
		if o.HV30D != nil {
			return true
		}
	}
	return false
}
