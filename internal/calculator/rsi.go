package calculator

// rsiEpsilon keeps the relative strength finite when a window holds no losses.
const rsiEpsilon = 1e-9

// RSI computes the relative strength index of values from the rolling mean
// of gains and losses over period. The first change is taken as zero, so the
// first value is available at index period-1. Output lies in [0, 100].
func RSI(values []float64, period int) Series {
	n := len(values)
	if n == 0 {
		return Series{}
	}
	if period <= 0 || n < period {
		return unavailable(n)
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains[i] = change
		} else if change < 0 {
			losses[i] = -change
		}
	}

	out := make([]float64, n)
	var gainSum, lossSum float64
	for i := 0; i < n; i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i >= period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period-1 {
			continue
		}
		avgGain := clampZero(gainSum / float64(period))
		avgLoss := clampZero(lossSum / float64(period))
		rs := avgGain / (avgLoss + rsiEpsilon)
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return Series{Values: out, Start: period - 1}
}

// clampZero absorbs the negative drift a running sum can pick up.
func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
