package strategy

import (
	"fmt"

	"SignalSentinel/internal/model"
)

// Engine routes each timeframe to its strategy: daily bars to the breakout
// evaluator and hourly bars to the EMA/RSI pullback evaluator.
type Engine struct {
	Breakout model.BreakoutParams
	Pullback model.PullbackParams
}

// NewEngine creates an Engine from the strategy parameters.
func NewEngine(b model.BreakoutParams, p model.PullbackParams) *Engine {
	return &Engine{Breakout: b, Pullback: p}
}

// Evaluate runs the strategy for tf over bars and reports the outcome.
func (e *Engine) Evaluate(sym string, tf model.Timeframe, bars []model.OHLCV) model.Outcome {
	out := model.Outcome{Symbol: sym, Timeframe: tf}
	if len(bars) == 0 {
		out.Skip = model.SkipNoData
		return out
	}

	switch tf {
	case model.Timeframe1D:
		if !e.Breakout.Enabled {
			out.Skip = model.SkipDisabled
			return out
		}
		out.Ideas, out.Skip = breakout(sym, bars, e.Breakout)
	case model.Timeframe1H:
		if !e.Pullback.Enabled {
			out.Skip = model.SkipDisabled
			return out
		}
		out.Ideas, out.Skip = pullback(sym, bars, e.Pullback)
	default:
		out.Err = fmt.Errorf("no strategy for timeframe %q", tf)
	}
	return out
}

// Enabled reports whether any strategy runs on tf.
func (e *Engine) Enabled(tf model.Timeframe) bool {
	switch tf {
	case model.Timeframe1D:
		return e.Breakout.Enabled
	case model.Timeframe1H:
		return e.Pullback.Enabled
	}
	return false
}

// CollectIdeas flattens the ideas of all outcomes, preserving order.
func CollectIdeas(outcomes []model.Outcome) []model.TradeIdea {
	var ideas []model.TradeIdea
	for _, o := range outcomes {
		ideas = append(ideas, o.Ideas...)
	}
	return ideas
}
