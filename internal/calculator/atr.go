package calculator

import (
	"math"

	"SignalSentinel/internal/model"
)

// TrueRange returns the per-bar true range. The first bar has no previous
// close, so its range is high-low.
func TrueRange(bars []model.OHLCV) []float64 {
	tr := make([]float64, len(bars))
	for i, b := range bars {
		tr[i] = b.High - b.Low
		if i == 0 {
			continue
		}
		prevClose := bars[i-1].Close
		tr[i] = math.Max(tr[i], math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
	}
	return tr
}

// ATR computes the average true range as a rolling mean of the true range
// over period. The first period-1 positions are not available.
func ATR(bars []model.OHLCV, period int) Series {
	n := len(bars)
	if n == 0 {
		return Series{}
	}
	if period <= 0 || n < period {
		return unavailable(n)
	}

	tr := TrueRange(bars)
	out := make([]float64, n)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += tr[i]
		if i >= period {
			sum -= tr[i-period]
		}
		if i >= period-1 {
			out[i] = clampZero(sum / float64(period))
		}
	}
	return Series{Values: out, Start: period - 1}
}
