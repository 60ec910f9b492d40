package calculator

import (
	"errors"
	"math"

	"SignalSentinel/internal/model"
)

// PriceRange returns the highest high and lowest low of bars.
func PriceRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		high = math.Max(high, b.High)
		low = math.Min(low, b.Low)
	}
	return high, low, nil
}

// MaxVolume returns the largest volume of bars, 0 when bars is empty.
func MaxVolume(bars []model.OHLCV) float64 {
	max := 0.0
	for _, b := range bars {
		max = math.Max(max, b.Volume)
	}
	return max
}
