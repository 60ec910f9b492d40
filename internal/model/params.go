package model

// BreakoutParams configures the daily breakout evaluator.
type BreakoutParams struct {
	Enabled            bool    `yaml:"enabled"`
	ATRPeriod          int     `yaml:"atr_period"`
	ATRMultStop        float64 `yaml:"atr_mult_stop"`
	BreakoutBufferPips float64 `yaml:"breakout_buffer_pips"`
}

// PullbackParams configures the EMA/RSI pullback evaluator.
type PullbackParams struct {
	Enabled          bool    `yaml:"enabled"`
	EMAFast          int     `yaml:"ema_fast"`
	EMASlow          int     `yaml:"ema_slow"`
	RSIPeriod        int     `yaml:"rsi_period"`
	RSIPullbackLong  float64 `yaml:"rsi_pullback_long"`
	RSIPullbackShort float64 `yaml:"rsi_pullback_short"`
	ATRPeriod        int     `yaml:"atr_period"`
	ATRMultStop      float64 `yaml:"atr_mult_stop"`
}

// Limits caps the ranked idea list.
type Limits struct {
	MinSignals   int `yaml:"min_signals"`
	MaxSignals   int `yaml:"max_signals"`
	MaxPerSymbol int `yaml:"max_per_symbol"`
}
