package calculator

import (
	"errors"
)

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// TailMean averages the last n values, or all of them when fewer exist.
func TailMean(values []float64, n int) (float64, error) {
	if len(values) < n {
		n = len(values)
	}
	return CalculateSMA(values, n)
}
