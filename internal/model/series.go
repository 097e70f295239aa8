package model

import "time"

// Observation is one daily volatility reading. Either field may be nil when the
// source had no value for that date (e.g. no IV history before options listed).
type Observation struct {
	Date  time.Time
	HV30D *float64 // 30-day historical volatility, annualized fraction
	IV30D *float64 // 30-day implied volatility, annualized fraction
}

// TickerSeries holds the cached daily series for one ticker.
// Dates are unique and ascending; the series may be empty.
type TickerSeries struct {
	Symbol       string
	Observations []Observation
}

// MaxDate returns the latest date in the series, or a zero time when empty.
func (s TickerSeries) MaxDate() time.Time {
	if len(s.Observations) == 0 {
		return time.Time{}
	}
	return s.Observations[len(s.Observations)-1].Date
}

// Float returns a pointer to v. Convenience for building observations.
func Float(v float64) *float64 { return &v }
