package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization basis for daily volatility.
const TradingDaysPerYear = 252

// LogReturns computes day-over-day log returns from a close series.
// Non-positive closes produce no return for that step.
func LogReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i] <= 0 || closes[i-1] <= 0 {
			continue
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	return returns
}

// AnnualizedVol returns the annualized volatility of a log-return sample as a
// decimal fraction (sample standard deviation scaled by sqrt(252)).
func AnnualizedVol(returns []float64) (float64, error) {
	if len(returns) < 2 {
		return 0, errors.New("not enough returns for volatility")
	}
	return stat.StdDev(returns, nil) * math.Sqrt(TradingDaysPerYear), nil
}

// RollingVol computes the trailing annualized volatility for each close, using
// a window of `window` log returns ending at that close. Entries without a
// full window are NaN, so the result stays aligned with the input closes.
func RollingVol(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if window <= 1 {
		return out
	}
	for i := window; i < len(closes); i++ {
		vol, err := AnnualizedVol(LogReturns(closes[i-window : i+1]))
		if err != nil {
			continue
		}
		out[i] = vol
	}
	return out
}
