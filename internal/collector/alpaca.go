package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"SignalSentinel/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca market data API. It only
// serves US equities.
type AlpacaFetcher struct {
	Client *marketdata.Client
	Now    func() time.Time
}

// NewAlpacaFetcher creates a fetcher authenticated with the given key pair.
func NewAlpacaFetcher(apiKey, apiSecret string) *AlpacaFetcher {
	return &AlpacaFetcher{
		Client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		Now: time.Now,
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

var alpacaTimeFrames = map[model.Timeframe]marketdata.TimeFrame{
	model.Timeframe1D: marketdata.OneDay,
	model.Timeframe1H: marketdata.OneHour,
}

func (f *AlpacaFetcher) FetchBars(ctx context.Context, symbol string, tf model.Timeframe, days int) ([]model.OHLCV, error) {
	timeFrame, ok := alpacaTimeFrames[tf]
	if !ok {
		return nil, fmt.Errorf("alpaca: unsupported timeframe %q", tf)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := f.Now()
	raw, err := f.Client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: timeFrame,
		Start:     now.AddDate(0, 0, -days),
		End:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}

	bars := make([]model.OHLCV, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, model.OHLCV{
			Time:   b.Timestamp.UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}
	return model.NormalizeBars(bars), nil
}
