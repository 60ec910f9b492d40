package strategy

import (
	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/symbol"
)

// MinBreakoutBars is the shortest daily history the breakout evaluator accepts.
const MinBreakoutBars = 20

// Breakout proposes pending orders around the previous daily bar: a LONG
// above its high and a SHORT below its low, each offset by the pip buffer and
// protected by an ATR stop. The last bar may still be forming and is not used
// as the reference.
func Breakout(sym string, bars []model.OHLCV, p model.BreakoutParams) []model.TradeIdea {
	ideas, _ := breakout(sym, bars, p)
	return ideas
}

func breakout(sym string, bars []model.OHLCV, p model.BreakoutParams) ([]model.TradeIdea, model.SkipReason) {
	if len(bars) < MinBreakoutBars {
		return nil, model.SkipShortHistory
	}
	atr, ok := calculator.ATR(bars, p.ATRPeriod).Last()
	if !ok {
		return nil, model.SkipIndicatorWarmup
	}

	prev := bars[len(bars)-2]
	buffer := symbol.PipsToPrice(sym, p.BreakoutBufferPips)
	stopDist := p.ATRMultStop * atr

	var ideas []model.TradeIdea

	entry := prev.High + buffer
	if idea, err := model.NewTradeIdea(sym, model.Timeframe1D, model.Long, model.StrategyBreakout,
		entry, entry-stopDist, "Daily breakout above previous high + ATR stop"); err == nil {
		ideas = append(ideas, idea)
	}

	entry = prev.Low - buffer
	if idea, err := model.NewTradeIdea(sym, model.Timeframe1D, model.Short, model.StrategyBreakout,
		entry, entry+stopDist, "Daily breakout below previous low + ATR stop"); err == nil {
		ideas = append(ideas, idea)
	}

	if len(ideas) == 0 {
		return nil, model.SkipNoSetup
	}
	return ideas, model.SkipNone
}
