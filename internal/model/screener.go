package model

// SkipReason explains why a ticker was excluded from the screener.
type SkipReason string

const (
	ReasonNotFound            SkipReason = "NOT_FOUND"
	ReasonInsufficientHistory SkipReason = "INSUFFICIENT_HISTORY"
	ReasonDegenerateMetric    SkipReason = "DEGENERATE_METRIC"
)

// ScreenerRow is one row of the screener output table. All fields are defined:
// tickers with an undefined rank or ratio are excluded, not reported partially.
type ScreenerRow struct {
	Symbol    string
	CurrentIV float64 // fraction, e.g. 0.23 for 23%
	IVRank    float64 // position of CurrentIV in its 1-year [min,max], 0..1
	IVHVRatio float64 // implied over realized, dimensionless
}

// TickerResult carries either a computed row or the reason the ticker was
// skipped. Exactly one of Row / Reason is set.
type TickerResult struct {
	Symbol string
	Row    *ScreenerRow
	Reason SkipReason
}

// Eligible reports whether the result carries a screener row.
func (r TickerResult) Eligible() bool { return r.Row != nil }
