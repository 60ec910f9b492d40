package model

import (
	"sort"
	"time"
)

// Timeframe identifies the bar interval of a price history.
type Timeframe string

const (
	Timeframe1D Timeframe = "1d"
	Timeframe1H Timeframe = "1h"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the close prices of bars.
func Closes(bars []OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// NormalizeBars sorts bars chronologically and drops duplicate timestamps,
// keeping the last bar seen for a timestamp.
func NormalizeBars(bars []OHLCV) []OHLCV {
	if len(bars) == 0 {
		return nil
	}
	sorted := make([]OHLCV, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	out := sorted[:0]
	for _, b := range sorted {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
