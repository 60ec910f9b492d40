// Package symbol holds static per-instrument constants.
package symbol

// Meta describes the price granularity of an instrument. PipValuePerLot is an
// approximation used for labeling only.
type Meta struct {
	PipSize        float64
	PipValuePerLot float64
}

// Default applies to any symbol missing from the table.
var Default = Meta{PipSize: 0.0001, PipValuePerLot: 10.0}

var table = map[string]Meta{
	"EURUSD=X": {PipSize: 0.0001, PipValuePerLot: 10.0},
	"GBPUSD=X": {PipSize: 0.0001, PipValuePerLot: 10.0},
	"USDJPY=X": {PipSize: 0.01, PipValuePerLot: 9.0},
	"XAUUSD=X": {PipSize: 0.1, PipValuePerLot: 10.0},
}

// Lookup returns the metadata for sym, falling back to Default.
func Lookup(sym string) Meta {
	if m, ok := table[sym]; ok {
		return m
	}
	return Default
}

// PipsToPrice converts a distance in pips into price units for sym.
func PipsToPrice(sym string, pips float64) float64 {
	return pips * Lookup(sym).PipSize
}
