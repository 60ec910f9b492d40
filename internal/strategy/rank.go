package strategy

import (
	"math"
	"sort"

	"SignalSentinel/internal/model"
)

const (
	scoreEpsilon = 1e-6
	relRiskFloor = 1e-9
	dailyBonus   = 1.2
	emaRSIBonus  = 1.1
)

// Score rates an idea by the inverse of its stop distance relative to entry,
// so tighter stops rank higher. Daily ideas and EMA/RSI setups get a bonus.
func Score(idea model.TradeIdea) float64 {
	relRisk := math.Abs(idea.Entry-idea.Stop) / math.Max(relRiskFloor, math.Abs(idea.Entry))
	score := 1.0 / (relRisk + scoreEpsilon)
	if idea.Timeframe == model.Timeframe1D {
		score *= dailyBonus
	}
	if idea.Strategy == model.StrategyEMARSI {
		score *= emaRSIBonus
	}
	return score
}

// Rank scores ideas, orders them by descending score (ties keep input order),
// admits at most limits.MaxPerSymbol per symbol and then keeps the first
// limits.MaxSignals. The input slice is not modified.
func Rank(ideas []model.TradeIdea, limits model.Limits) []model.TradeIdea {
	scored := make([]model.TradeIdea, len(ideas))
	for i, idea := range ideas {
		idea.Score = Score(idea)
		scored[i] = idea
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	perSymbol := make(map[string]int)
	selected := make([]model.TradeIdea, 0, len(scored))
	for _, idea := range scored {
		if perSymbol[idea.Symbol] >= limits.MaxPerSymbol {
			continue
		}
		perSymbol[idea.Symbol]++
		selected = append(selected, idea)
	}

	if limits.MaxSignals < 0 {
		return selected[:0]
	}
	if len(selected) > limits.MaxSignals {
		selected = selected[:limits.MaxSignals]
	}
	return selected
}
