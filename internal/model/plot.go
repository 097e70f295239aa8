package model

// NamedWindow is one chart panel: a timeframe label and its resolved sub-series.
// HasData distinguishes "nothing resolved for this timeframe" from an empty
// filter result; HasIV marks whether the IV line is plottable (a ticker may have
// HV-only history).
type NamedWindow struct {
	Label        string
	Observations []Observation
	HasData      bool
	HasIV        bool
}
