// Package scanner flags tickers with an abnormal daily move on unusual volume.
package scanner

import (
	"context"
	"log"
	"math"

	"github.com/shopspring/decimal"

	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

const (
	// HistoryDays is the calendar window fetched per ticker.
	HistoryDays = 10
	// AvgVolumeBars is the number of most recent bars averaged for volume.
	AvgVolumeBars = 5

	stopFactor = 0.97
)

// targetFactors place the take-profits at fixed percentages above entry.
var targetFactors = [3]float64{1.06, 1.09, 1.15}

// Thresholds are the selection bars a ticker must clear.
type Thresholds struct {
	MinChangePct     float64
	VolumeMultiplier float64
}

var (
	StrictThresholds = Thresholds{MinChangePct: 3, VolumeMultiplier: 2.0}
	LooseThresholds  = Thresholds{MinChangePct: 2, VolumeMultiplier: 1.2}
)

// ThresholdsFor returns the strict or loose thresholds.
func ThresholdsFor(strict bool) Thresholds {
	if strict {
		return StrictThresholds
	}
	return LooseThresholds
}

// DailySource fetches recent daily bars for a ticker.
type DailySource interface {
	Daily(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
}

// Skip records a ticker that produced no hot stock.
type Skip struct {
	Ticker string
	Reason model.SkipReason
	Err    error
}

// Report is the result of one scan.
type Report struct {
	Stocks  []model.HotStock
	Skipped []Skip
	Strict  bool
}

// Scanner walks a ticker universe one symbol at a time.
type Scanner struct {
	Source DailySource
}

// NewScanner creates a Scanner reading bars from src.
func NewScanner(src DailySource) *Scanner {
	return &Scanner{Source: src}
}

// Scan evaluates universe in order and keeps the first limit hot stocks.
// A failed or short fetch skips the ticker and the scan continues.
func (s *Scanner) Scan(ctx context.Context, universe []model.Ticker, limit int, strict bool) Report {
	rep := Report{Strict: strict}
	for _, t := range universe {
		if len(rep.Stocks) >= limit {
			break
		}
		if ctx.Err() != nil {
			log.Printf("[WARN] scan cancelled after %d tickers: %v", len(rep.Stocks)+len(rep.Skipped), ctx.Err())
			break
		}

		bars, err := s.Source.Daily(ctx, t.Symbol, HistoryDays)
		if err != nil {
			log.Printf("[WARN] scan %s: %v", t.Symbol, err)
			rep.Skipped = append(rep.Skipped, Skip{Ticker: t.Symbol, Err: err})
			continue
		}
		if len(bars) < 2 {
			rep.Skipped = append(rep.Skipped, Skip{Ticker: t.Symbol, Reason: model.SkipShortHistory})
			continue
		}

		hs, ok := Evaluate(t, bars, strict)
		if !ok {
			rep.Skipped = append(rep.Skipped, Skip{Ticker: t.Symbol, Reason: model.SkipNoSetup})
			continue
		}
		rep.Stocks = append(rep.Stocks, hs)
	}
	return rep
}

// Evaluate checks the last two bars of a ticker against the thresholds and
// builds the hot stock with fixed percentage bands around the last close.
func Evaluate(t model.Ticker, bars []model.OHLCV, strict bool) (model.HotStock, bool) {
	if len(bars) < 2 {
		return model.HotStock{}, false
	}
	today := bars[len(bars)-1]
	yesterday := bars[len(bars)-2]
	if yesterday.Close == 0 {
		return model.HotStock{}, false
	}

	change := (today.Close - yesterday.Close) / yesterday.Close * 100
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}
	avgVol, err := calculator.TailMean(volumes, AvgVolumeBars)
	if err != nil || avgVol <= 0 {
		return model.HotStock{}, false
	}

	th := ThresholdsFor(strict)
	unusualVolume := today.Volume > th.VolumeMultiplier*avgVol
	if math.Abs(change) < th.MinChangePct || !unusualVolume {
		return model.HotStock{}, false
	}

	sector := t.Sector
	if sector == "" {
		sector = "Unknown"
	}
	entry := today.Close
	hs := model.HotStock{
		Ticker:      t.Symbol,
		Sector:      sector,
		Entry:       round2(entry),
		Stop:        round2(entry * stopFactor),
		ChangePct:   round2(change),
		Volume:      today.Volume,
		VolumeRatio: today.Volume / avgVol,
		Strict:      strict,
	}
	for i, f := range targetFactors {
		hs.Targets[i] = round2(entry * f)
	}
	return hs, true
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
