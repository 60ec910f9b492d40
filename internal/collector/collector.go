package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SignalSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars  map[string][]model.OHLCV // keyed by symbol + "|" + timeframe
	Errs  map[string]error         // keyed by symbol
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, symbol string, tf model.Timeframe, _ int) ([]model.OHLCV, error) {
	m.Calls++
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	return m.Bars[MockKey(symbol, tf)], nil
}

// MockKey builds the MockFetcher.Bars key for symbol and tf.
func MockKey(symbol string, tf model.Timeframe) string {
	return symbol + "|" + string(tf)
}

// GenerateMockBars builds count hourly-spaced bars drifting around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

type historyKey struct {
	symbol string
	tf     model.Timeframe
}

// Collector fetches price histories and caches them for the duration of a run,
// so the strategy pass and the chart pass share one download per series.
type Collector struct {
	Fetcher Fetcher

	mu    sync.Mutex
	cache map[historyKey][]model.OHLCV
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, cache: make(map[historyKey][]model.OHLCV)}
}

// History returns the cleaned bars for symbol on tf, fetching them on first use.
func (c *Collector) History(ctx context.Context, symbol string, tf model.Timeframe) ([]model.OHLCV, error) {
	key := historyKey{symbol, tf}

	c.mu.Lock()
	bars, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return bars, nil
	}

	days, ok := LookbackDays[tf]
	if !ok {
		return nil, fmt.Errorf("unsupported timeframe %q", tf)
	}
	bars, err := c.Fetcher.FetchBars(ctx, symbol, tf, days)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s: %w", symbol, tf, err)
	}
	bars = model.NormalizeBars(bars)

	c.mu.Lock()
	c.cache[key] = bars
	c.mu.Unlock()
	return bars, nil
}

// Cached returns previously fetched bars without touching the network.
func (c *Collector) Cached(symbol string, tf model.Timeframe) ([]model.OHLCV, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bars, ok := c.cache[historyKey{symbol, tf}]
	return bars, ok
}

// Daily fetches the last days of daily bars for symbol, bypassing the cache.
func (c *Collector) Daily(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	bars, err := c.Fetcher.FetchBars(ctx, symbol, model.Timeframe1D, days)
	if err != nil {
		return nil, err
	}
	return model.NormalizeBars(bars), nil
}

// Reset drops all cached histories.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[historyKey][]model.OHLCV)
}
