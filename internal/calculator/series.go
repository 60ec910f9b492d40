package calculator

// Series is an indicator output aligned index-for-index with its input.
// Values before Start are not yet available.
type Series struct {
	Values []float64
	Start  int
}

// Len returns the number of aligned positions, available or not.
func (s Series) Len() int { return len(s.Values) }

// At returns the value at index i and whether it is available.
func (s Series) At(i int) (float64, bool) {
	if i < s.Start || i < 0 || i >= len(s.Values) {
		return 0, false
	}
	return s.Values[i], true
}

// Last returns the most recent value and whether it is available.
func (s Series) Last() (float64, bool) {
	return s.At(len(s.Values) - 1)
}

func unavailable(n int) Series {
	return Series{Values: make([]float64, n), Start: n}
}
