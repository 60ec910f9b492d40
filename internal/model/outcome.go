package model

// SkipReason explains why a symbol produced no ideas without failing.
type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipDisabled        SkipReason = "disabled"
	SkipNoData          SkipReason = "no data"
	SkipShortHistory    SkipReason = "insufficient history"
	SkipIndicatorWarmup SkipReason = "indicator not ready"
	SkipNoSetup         SkipReason = "no setup"
)

// Outcome is the per-item result of evaluating one symbol on one timeframe.
// Exactly one of Ideas, Skip or Err describes what happened.
type Outcome struct {
	Symbol    string
	Timeframe Timeframe
	Ideas     []TradeIdea
	Skip      SkipReason
	Err       error
}

// OK reports whether the outcome carries ideas.
func (o Outcome) OK() bool { return o.Err == nil && len(o.Ideas) > 0 }
