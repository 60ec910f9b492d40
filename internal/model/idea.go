package model

import (
	"errors"
	"fmt"
)

// Direction is the side of a trade idea.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Strategy names the rule set that produced a trade idea.
type Strategy string

const (
	StrategyBreakout Strategy = "BREAKOUT"
	StrategyEMARSI   Strategy = "EMA_RSI"
)

var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrEntryEqualsStop  = errors.New("entry equals stop")
	ErrNonPositiveRisk  = errors.New("risk must be positive")
)

// RiskMultiples are the R-multiples of the three take-profit targets.
var RiskMultiples = [3]float64{1.0, 2.0, 3.0}

// TradeIdea is a proposed entry with a stop and three R-multiple targets.
type TradeIdea struct {
	Symbol    string     `json:"symbol"`
	Timeframe Timeframe  `json:"timeframe"`
	Direction Direction  `json:"direction"`
	Strategy  Strategy   `json:"strategy"`
	Entry     float64    `json:"entry"`
	Stop      float64    `json:"stop"`
	Targets   [3]float64 `json:"targets"`
	RRs       [3]float64 `json:"rrs"`
	Reason    string     `json:"reason"`
	Score     float64    `json:"score"`
}

// NewTradeIdea builds a TradeIdea whose targets sit at 1R, 2R and 3R from
// entry in the trade direction. The stop must lie on the losing side of entry.
func NewTradeIdea(symbol string, tf Timeframe, dir Direction, strategy Strategy, entry, stop float64, reason string) (TradeIdea, error) {
	if entry == stop {
		return TradeIdea{}, fmt.Errorf("%s %s: %w", symbol, dir, ErrEntryEqualsStop)
	}

	var risk, sign float64
	switch dir {
	case Long:
		risk, sign = entry-stop, 1
	case Short:
		risk, sign = stop-entry, -1
	default:
		return TradeIdea{}, fmt.Errorf("%s %q: %w", symbol, dir, ErrUnknownDirection)
	}
	if !(risk > 0) {
		return TradeIdea{}, fmt.Errorf("%s %s risk %.6f: %w", symbol, dir, risk, ErrNonPositiveRisk)
	}

	idea := TradeIdea{
		Symbol:    symbol,
		Timeframe: tf,
		Direction: dir,
		Strategy:  strategy,
		Entry:     entry,
		Stop:      stop,
		RRs:       RiskMultiples,
		Reason:    reason,
	}
	for i, m := range RiskMultiples {
		idea.Targets[i] = entry + sign*m*risk
	}
	return idea, nil
}

// Risk returns the absolute entry-to-stop distance.
func (t TradeIdea) Risk() float64 {
	if t.Entry > t.Stop {
		return t.Entry - t.Stop
	}
	return t.Stop - t.Entry
}

// RRRatio returns the reward-to-risk ratio of target, or 0 when the idea
// carries no positive risk.
func RRRatio(entry, stop, target float64, isLong bool) float64 {
	risk, reward := stop-entry, entry-target
	if isLong {
		risk, reward = entry-stop, target-entry
	}
	if risk <= 0 {
		return 0
	}
	return reward / risk
}
