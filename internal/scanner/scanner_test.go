package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"SignalSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	bars  map[string][]model.OHLCV
	errs  map[string]error
	calls []string
}

func (f *fakeSource) Daily(_ context.Context, symbol string, days int) ([]model.OHLCV, error) {
	f.calls = append(f.calls, symbol)
	if days != HistoryDays {
		return nil, errors.New("unexpected window")
	}
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.bars[symbol], nil
}

// dailyBars builds 10 bars at 100 with volume 1000, then a final bar at
// lastClose with lastVolume.
func dailyBars(lastClose, lastVolume float64) []model.OHLCV {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, 0, 10)
	for i := 0; i < 9; i++ {
		bars = append(bars, model.OHLCV{Time: start.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000})
	}
	bars = append(bars, model.OHLCV{Time: start.AddDate(0, 0, 9), Open: 100, High: lastClose + 1, Low: 99, Close: lastClose, Volume: lastVolume})
	return bars
}

func TestThresholdsFor(t *testing.T) {
	assert.Equal(t, Thresholds{MinChangePct: 3, VolumeMultiplier: 2.0}, ThresholdsFor(true))
	assert.Equal(t, Thresholds{MinChangePct: 2, VolumeMultiplier: 1.2}, ThresholdsFor(false))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		close   float64
		volume  float64
		strict  bool
		wantHot bool
	}{
		// avg volume over the last 5 bars includes today: (4*1000+v)/5
		{"strict big move big volume", 104, 5000, true, true},
		{"strict small move", 102.5, 5000, true, false},
		{"strict weak volume", 104, 2000, true, false},
		{"loose small move", 102.5, 2000, false, true},
		{"loose weak volume", 102.5, 1200, false, false},
		{"loose drop", 97.5, 2000, false, true},
		{"flat", 100, 9000, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs, ok := Evaluate(model.Ticker{Symbol: "AAA", Sector: "Tech"}, dailyBars(tt.close, tt.volume), tt.strict)
			assert.Equal(t, tt.wantHot, ok)
			if ok {
				assert.Equal(t, tt.strict, hs.Strict)
			}
		})
	}
}

func TestEvaluate_Levels(t *testing.T) {
	hs, ok := Evaluate(model.Ticker{Symbol: "AAA"}, dailyBars(104, 5000), true)
	require.True(t, ok)
	assert.Equal(t, "AAA", hs.Ticker)
	assert.Equal(t, "Unknown", hs.Sector)
	assert.Equal(t, 104.0, hs.Entry)
	assert.Equal(t, 100.88, hs.Stop)
	assert.Equal(t, [3]float64{110.24, 113.36, 119.6}, hs.Targets)
	assert.Equal(t, 4.0, hs.ChangePct)
	assert.InDelta(t, 5000.0/1800.0, hs.VolumeRatio, 1e-9)
}

func TestEvaluate_TooFewBars(t *testing.T) {
	_, ok := Evaluate(model.Ticker{Symbol: "AAA"}, dailyBars(104, 5000)[9:], true)
	assert.False(t, ok)
}

func TestScan(t *testing.T) {
	src := &fakeSource{
		bars: map[string][]model.OHLCV{
			"HOT1":  dailyBars(104, 5000),
			"COLD":  dailyBars(100.5, 1000),
			"SHORT": dailyBars(104, 5000)[9:],
			"HOT2":  dailyBars(95, 6000),
			"HOT3":  dailyBars(110, 9000),
		},
		errs: map[string]error{"ERR": errors.New("timeout")},
	}
	universe := []model.Ticker{{Symbol: "ERR"}, {Symbol: "HOT1"}, {Symbol: "COLD"}, {Symbol: "SHORT"}, {Symbol: "MISSING"}, {Symbol: "HOT2"}, {Symbol: "HOT3"}}

	rep := NewScanner(src).Scan(context.Background(), universe, 2, true)

	require.Len(t, rep.Stocks, 2)
	assert.Equal(t, "HOT1", rep.Stocks[0].Ticker)
	assert.Equal(t, "HOT2", rep.Stocks[1].Ticker)
	assert.NotContains(t, src.calls, "HOT3", "scan stops once the limit is reached")

	reasons := map[string]Skip{}
	for _, s := range rep.Skipped {
		reasons[s.Ticker] = s
	}
	assert.Error(t, reasons["ERR"].Err)
	assert.Equal(t, model.SkipNoSetup, reasons["COLD"].Reason)
	assert.Equal(t, model.SkipShortHistory, reasons["SHORT"].Reason)
	assert.Equal(t, model.SkipShortHistory, reasons["MISSING"].Reason)
}

func TestScan_LooseFallbackFindsMore(t *testing.T) {
	src := &fakeSource{bars: map[string][]model.OHLCV{
		"MILD": dailyBars(102.5, 2000),
	}}
	universe := []model.Ticker{{Symbol: "MILD"}}
	s := NewScanner(src)

	strict := s.Scan(context.Background(), universe, 5, true)
	assert.Empty(t, strict.Stocks)

	loose := s.Scan(context.Background(), universe, 5, false)
	require.Len(t, loose.Stocks, 1)
	assert.False(t, loose.Stocks[0].Strict)
}

func TestScan_Cancelled(t *testing.T) {
	src := &fakeSource{bars: map[string][]model.OHLCV{"HOT1": dailyBars(104, 5000)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep := NewScanner(src).Scan(ctx, []model.Ticker{{Symbol: "HOT1"}}, 5, true)
	assert.Empty(t, rep.Stocks)
	assert.Empty(t, src.calls)
}
