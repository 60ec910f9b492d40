package model

// Account holds the informational account labels shown in message headers.
type Account struct {
	Size                float64 `yaml:"size"`
	RiskPerTradePercent float64 `yaml:"risk_per_trade_percent"`
}

// FTMORules are the prop-firm rules echoed in headers and status messages.
type FTMORules struct {
	DailyLossLimitPercent   float64 `yaml:"daily_loss_limit_percent"`
	OverallLossLimitPercent float64 `yaml:"overall_loss_limit_percent"`
	ProfitTargetPercent     float64 `yaml:"profit_target_percent"`
	MinTradingDays          int     `yaml:"min_trading_days"`
}
