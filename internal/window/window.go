package window

import (
	"math"

	"VolSentinel/internal/model"
)

// Spec names a timeframe to resolve against a series. Rolling specs carry a
// duration in years/months; YTD selects the calendar year of the series' last
// date (not the wall clock, so stale caches still render a panel).
type Spec struct {
	Name   string // short form: "5Y", "1Y", "6M", "YTD", "1M"
	Label  string // display form: "5 Years", ...
	Years  int
	Months int
	YTD    bool
}

var (
	Spec5Y  = Spec{Name: "5Y", Label: "5 Years", Years: 5}
	Spec1Y  = Spec{Name: "1Y", Label: "1 Year", Years: 1}
	Spec6M  = Spec{Name: "6M", Label: "6 Months", Months: 6}
	SpecYTD = Spec{Name: "YTD", Label: "YTD", YTD: true}
	Spec1M  = Spec{Name: "1M", Label: "1 Month", Months: 1}
)

// Specs returns the five standard timeframes in fixed display order.
func Specs() []Spec {
	return []Spec{Spec5Y, Spec1Y, Spec6M, SpecYTD, Spec1M}
}

// Parse maps a short timeframe name to its Spec.
func Parse(name string) (Spec, bool) {
	for _, s := range Specs() {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// days converts the rolling duration to calendar days: years count as 365.25
// days, months as 30. Applied uniformly to every rolling spec.
func (s Spec) days() int {
	return int(math.Round(float64(s.Years)*365.25)) + s.Months*30
}

// Resolve returns the contiguous sub-series selected by spec. The result is
// empty for an empty series, an unparseable/zero-duration spec, or (never for
// YTD) when no observation falls inside the window. Resolution never fails.
func Resolve(series model.TickerSeries, spec Spec) []model.Observation {
	obs := series.Observations
	if len(obs) == 0 {
		return nil
	}
	maxDate := series.MaxDate()

	if spec.YTD {
		year := maxDate.Year()
		for i, o := range obs {
			if o.Date.Year() == year {
				return obs[i:]
			}
		}
		return nil
	}

	d := spec.days()
	if d <= 0 {
		return nil
	}

	// Boundary-inclusive on both ends: date >= start && date <= maxDate.
	start := maxDate.AddDate(0, 0, -d)
	for i, o := range obs {
		if !o.Date.Before(start) {
			return obs[i:]
		}
	}
	return nil
}
