package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"VolSentinel/internal/model"
)

func TestFormatScreenerReport(t *testing.T) {
	rows := []model.ScreenerRow{
		{Symbol: "XYZ", CurrentIV: 0.34, IVRank: 0.80, IVHVRatio: 1.70},
		{Symbol: "ABC", CurrentIV: 0.22, IVRank: 0.45, IVHVRatio: 1.10},
	}
	msg := FormatScreenerReport(rows, 10)
	assert.Contains(t, msg, "XYZ")
	assert.Contains(t, msg, "34.0%")
	assert.Contains(t, msg, "80%")
	assert.Contains(t, msg, "1.70x")
	assert.Contains(t, msg, "ABC")
}

func TestFormatScreenerReport_Empty(t *testing.T) {
	msg := FormatScreenerReport(nil, 10)
	assert.Contains(t, msg, "No tickers")
}

func TestFormatScreenerReport_Limit(t *testing.T) {
	rows := []model.ScreenerRow{
		{Symbol: "A", IVRank: 0.9},
		{Symbol: "B", IVRank: 0.8},
		{Symbol: "C", IVRank: 0.7},
	}
	msg := FormatScreenerReport(rows, 2)
	assert.Contains(t, msg, "A")
	assert.Contains(t, msg, "B")
	assert.NotContains(t, msg, "C ")
	assert.Contains(t, msg, "and 1 more")
}

func TestFormatPlotReport(t *testing.T) {
	date := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	panels := []model.NamedWindow{
		{
			Label: "1 Year",
			Observations: []model.Observation{
				{Date: date.AddDate(0, 0, -1), HV30D: model.Float(0.20), IV30D: model.Float(0.30)},
				{Date: date, HV30D: model.Float(0.21), IV30D: model.Float(0.31)},
			},
			HasData: true,
			HasIV:   true,
		},
		{Label: "1 Month"},
	}
	msg := FormatPlotReport("XYZ", panels)
	assert.Contains(t, msg, "XYZ")
	assert.Contains(t, msg, "1 Year: 2 pts")
	assert.Contains(t, msg, "HV 21.0%")
	assert.Contains(t, msg, "IV 31.0%")
	assert.Contains(t, msg, "1 Month: no data for this timeframe")
}

func TestFormatPlotReport_HVOnlyPanel(t *testing.T) {
	date := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	panels := []model.NamedWindow{
		{
			Label:        "6 Months",
			Observations: []model.Observation{{Date: date, HV30D: model.Float(0.25)}},
			HasData:      true,
			HasIV:        false,
		},
	}
	msg := FormatPlotReport("NOOPT", panels)
	assert.Contains(t, msg, "HV 25.0%")
	assert.NotContains(t, msg, "| IV")
}

func TestFormatWatchlist(t *testing.T) {
	assert.Contains(t, FormatWatchlist(nil), "empty")
	msg := FormatWatchlist([]string{"SPY", "QQQ"})
	assert.Contains(t, msg, "SPY, QQQ")
	assert.Contains(t, msg, "(2)")
}
