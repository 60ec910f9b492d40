package calculator

// EMA computes the recursive exponential moving average of values with
// alpha = 2/(period+1), seeded from the first value. Every position is
// available.
func EMA(values []float64, period int) Series {
	if len(values) == 0 {
		return Series{}
	}
	if period <= 0 {
		return unavailable(len(values))
	}

	alpha := 2.0 / float64(period+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return Series{Values: out}
}
