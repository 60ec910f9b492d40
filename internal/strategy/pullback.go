package strategy

import (
	"fmt"

	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

// pullbackWarmup is the number of bars required beyond the slower EMA period.
const pullbackWarmup = 30

// MinPullbackBars returns the shortest history the pullback evaluator accepts.
func MinPullbackBars(p model.PullbackParams) int {
	return max(p.EMAFast, p.EMASlow) + pullbackWarmup
}

// Pullback looks for trend-following entries on the latest bar: a LONG when
// the fast EMA is above the slow EMA and RSI has pulled back to the long
// threshold, and the mirror SHORT. Entry is the last close with an ATR stop.
func Pullback(sym string, bars []model.OHLCV, p model.PullbackParams) []model.TradeIdea {
	ideas, _ := pullback(sym, bars, p)
	return ideas
}

func pullback(sym string, bars []model.OHLCV, p model.PullbackParams) ([]model.TradeIdea, model.SkipReason) {
	if len(bars) < MinPullbackBars(p) {
		return nil, model.SkipShortHistory
	}

	closes := model.Closes(bars)
	fast, okFast := calculator.EMA(closes, p.EMAFast).Last()
	slow, okSlow := calculator.EMA(closes, p.EMASlow).Last()
	rsi, okRSI := calculator.RSI(closes, p.RSIPeriod).Last()
	atr, okATR := calculator.ATR(bars, p.ATRPeriod).Last()
	if !okFast || !okSlow || !okRSI || !okATR {
		return nil, model.SkipIndicatorWarmup
	}

	entry := closes[len(closes)-1]
	stopDist := p.ATRMultStop * atr

	var ideas []model.TradeIdea
	switch {
	case fast > slow && rsi <= p.RSIPullbackLong:
		reason := fmt.Sprintf("EMA%d>EMA%d + RSI pullback (%.1f) + ATR stop", p.EMAFast, p.EMASlow, rsi)
		if idea, err := model.NewTradeIdea(sym, model.Timeframe1H, model.Long, model.StrategyEMARSI,
			entry, entry-stopDist, reason); err == nil {
			ideas = append(ideas, idea)
		}
	case fast < slow && rsi >= p.RSIPullbackShort:
		reason := fmt.Sprintf("EMA%d<EMA%d + RSI pullback (%.1f) + ATR stop", p.EMAFast, p.EMASlow, rsi)
		if idea, err := model.NewTradeIdea(sym, model.Timeframe1H, model.Short, model.StrategyEMARSI,
			entry, entry+stopDist, reason); err == nil {
			ideas = append(ideas, idea)
		}
	}

	if len(ideas) == 0 {
		return nil, model.SkipNoSetup
	}
	return ideas, model.SkipNone
}
