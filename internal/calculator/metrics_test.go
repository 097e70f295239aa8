package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VolSentinel/internal/model"
)

var testEnd = time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)

// flatSeries builds n daily observations ending at testEnd with fixed HV/IV.
func flatSeries(symbol string, n int, hv, iv float64) model.TickerSeries {
	obs := make([]model.Observation, n)
	for i := 0; i < n; i++ {
		obs[i] = model.Observation{
			Date:  testEnd.AddDate(0, 0, -(n - 1 - i)),
			HV30D: model.Float(hv),
			IV30D: model.Float(iv),
		}
	}
	return model.TickerSeries{Symbol: symbol, Observations: obs}
}

func TestCompute_RankAndRatio(t *testing.T) {
	// 252 daily points, IV ranging [0.10, 0.40] with last value 0.34 and last
	// HV 0.20: rank = (0.34-0.10)/(0.40-0.10) = 0.80, ratio = 0.34/0.20 = 1.70.
	series := flatSeries("XYZ", 252, 0.20, 0.22)
	obs := series.Observations
	obs[0].IV30D = model.Float(0.10)
	obs[10].IV30D = model.Float(0.40)
	obs[len(obs)-1].IV30D = model.Float(0.34)

	result := Compute(series)
	require.True(t, result.Eligible(), "reason: %s", result.Reason)

	row := result.Row
	assert.Equal(t, "XYZ", row.Symbol)
	assert.InDelta(t, 0.34, row.CurrentIV, 1e-12)
	assert.InDelta(t, 0.80, row.IVRank, 1e-12)
	assert.InDelta(t, 1.70, row.IVHVRatio, 1e-12)
}

func TestCompute_InsufficientHistory(t *testing.T) {
	series := flatSeries("THIN", 10, 0.20, 0.30)
	result := Compute(series)
	assert.False(t, result.Eligible())
	assert.Equal(t, model.ReasonInsufficientHistory, result.Reason)

	result = Compute(model.TickerSeries{Symbol: "EMPTY"})
	assert.Equal(t, model.ReasonInsufficientHistory, result.Reason)
}

func TestCompute_MissingColumn(t *testing.T) {
	// HV-only history: no IV column at all in the trailing year.
	series := flatSeries("NOIV", 100, 0.20, 0)
	for i := range series.Observations {
		series.Observations[i].IV30D = nil
	}
	result := Compute(series)
	assert.Equal(t, model.ReasonInsufficientHistory, result.Reason)

	series = flatSeries("NOHV", 100, 0, 0.30)
	for i := range series.Observations {
		series.Observations[i].HV30D = nil
	}
	series.Observations[5].IV30D = model.Float(0.10) // non-degenerate IV range
	result = Compute(series)
	assert.Equal(t, model.ReasonInsufficientHistory, result.Reason)
}

func TestCompute_FlatIVIsDegenerate(t *testing.T) {
	// Constant IV across the trailing year: rank is undefined, ticker excluded
	// even though current IV and HV are both well-defined.
	series := flatSeries("FLAT", 252, 0.20, 0.25)
	result := Compute(series)
	assert.False(t, result.Eligible())
	assert.Equal(t, model.ReasonDegenerateMetric, result.Reason)
}

func TestCompute_DegenerateRatio(t *testing.T) {
	series := flatSeries("ZHV", 252, 0, 0.25)
	series.Observations[0].IV30D = model.Float(0.10)
	result := Compute(series)
	assert.Equal(t, model.ReasonDegenerateMetric, result.Reason)

	series = flatSeries("NILHV", 252, 0.20, 0.25)
	series.Observations[0].IV30D = model.Float(0.10)
	series.Observations[len(series.Observations)-1].HV30D = nil
	result = Compute(series)
	assert.Equal(t, model.ReasonDegenerateMetric, result.Reason)
}

func TestCompute_MissingCurrentIV(t *testing.T) {
	series := flatSeries("NILIV", 252, 0.20, 0.25)
	series.Observations[0].IV30D = model.Float(0.10)
	series.Observations[len(series.Observations)-1].IV30D = nil
	result := Compute(series)
	assert.Equal(t, model.ReasonDegenerateMetric, result.Reason)
}

func TestCompute_RankStaysInUnitRange(t *testing.T) {
	series := flatSeries("RANGE", 252, 0.18, 0.20)
	for i := range series.Observations {
		series.Observations[i].IV30D = model.Float(0.10 + 0.001*float64(i%200))
	}
	result := Compute(series)
	require.True(t, result.Eligible(), "reason: %s", result.Reason)
	assert.GreaterOrEqual(t, result.Row.IVRank, 0.0)
	assert.LessOrEqual(t, result.Row.IVRank, 1.0)
}

func TestCompute_ExtremaOutsideYearIgnored(t *testing.T) {
	// An IV spike older than one year must not stretch the rank range.
	series := flatSeries("SPIKE", 500, 0.20, 0.25)
	obs := series.Observations
	obs[0].IV30D = model.Float(2.00) // ~16 months ago
	obs[len(obs)-300].IV30D = model.Float(0.10)
	obs[len(obs)-1].IV30D = model.Float(0.30)

	result := Compute(series)
	require.True(t, result.Eligible(), "reason: %s", result.Reason)
	// Window range is [0.10, 0.30], so the last value ranks at the top.
	assert.InDelta(t, 1.0, result.Row.IVRank, 1e-12)
}
