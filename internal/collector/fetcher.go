package collector

import (
	"context"

	"SignalSentinel/internal/model"
)

// Fetcher defines the interface for fetching market data. An unknown symbol
// or an empty window yields no bars and no error.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string, tf model.Timeframe, days int) ([]model.OHLCV, error)
	Name() string
}

// LookbackDays is the calendar window fetched per timeframe for strategy runs.
var LookbackDays = map[model.Timeframe]int{
	model.Timeframe1D: 60,
	model.Timeframe1H: 30,
}
