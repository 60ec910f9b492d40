package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"SignalSentinel/internal/model"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Data providers for price history.
const (
	ProviderYahoo  = "yahoo"
	ProviderAlpaca = "alpaca"
)

// CronParser parses the six-field schedules used in the config.
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken       string  `yaml:"bot_token"`
		ChatID         string  `yaml:"chat_id"`
		CommandChatIDs []int64 `yaml:"command_chat_ids"`
	} `yaml:"telegram"`
	Symbols    []string             `yaml:"symbols"`
	Timeframes []model.Timeframe    `yaml:"timeframes"`
	Breakout   model.BreakoutParams `yaml:"breakout"`
	EMARSI     model.PullbackParams `yaml:"ema_rsi"`
	Limits     model.Limits         `yaml:"limits"`
	Chart      struct {
		Enabled bool   `yaml:"enabled"`
		SaveDir string `yaml:"save_dir"`
		Candles int    `yaml:"candles"`
	} `yaml:"chart"`
	Status struct {
		SendStatus bool   `yaml:"send_status"`
		Timezone   string `yaml:"timezone"`
	} `yaml:"status"`
	FTMORules model.FTMORules `yaml:"ftmo_rules"`
	Account   model.Account   `yaml:"account"`
	Stocks    struct {
		Universe []model.Ticker `yaml:"universe"`
		Limit    int            `yaml:"limit"`
		News     bool           `yaml:"news"`
	} `yaml:"stocks"`
	Schedule struct {
		SignalCrons []string `yaml:"signal_crons"`
		StocksCron  string   `yaml:"stocks_cron"`
	} `yaml:"schedule"`
	DataSource struct {
		Provider        string `yaml:"provider"`
		AlpacaAPIKey    string `yaml:"alpaca_api_key"`
		AlpacaAPISecret string `yaml:"alpaca_api_secret"`
	} `yaml:"data_source"`
	StateFile string `yaml:"state_file"`
	Database  struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// newConfig returns a config with the switches that default to on already
// set, so that a YAML file only needs to mention what it turns off.
func newConfig() *Config {
	cfg := &Config{}
	cfg.Breakout.Enabled = true
	cfg.EMARSI.Enabled = true
	cfg.Chart.Enabled = true
	cfg.Status.SendStatus = true
	cfg.Stocks.News = true
	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := newConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) applyEnv() {
	if v := firstEnv("TOKEN_FTMO", "TOKEN_STOCKS", "BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := firstEnv("CHAT_ID_FTMO", "CHAT_ID_STOCKS", "CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("ACCOUNT_SIZE"); v != "" {
		var size float64
		if _, err := fmt.Sscanf(v, "%f", &size); err == nil {
			c.Account.Size = size
		}
	}
	if v := os.Getenv("RISK_PER_TRADE_PERCENT"); v != "" {
		var pct float64
		if _, err := fmt.Sscanf(v, "%f", &pct); err == nil {
			c.Account.RiskPerTradePercent = pct
		}
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		c.DataSource.AlpacaAPIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		c.DataSource.AlpacaAPISecret = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		c.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
}

func (c *Config) applyDefaults() {
	if len(c.Symbols) == 0 {
		c.Symbols = []string{"EURUSD=X", "GBPUSD=X", "USDJPY=X", "XAUUSD=X"}
	}
	if len(c.Timeframes) == 0 {
		c.Timeframes = []model.Timeframe{model.Timeframe1D, model.Timeframe1H}
	}

	if c.Breakout.ATRPeriod == 0 {
		c.Breakout.ATRPeriod = 14
	}
	if c.Breakout.ATRMultStop == 0 {
		c.Breakout.ATRMultStop = 1.5
	}
	if c.Breakout.BreakoutBufferPips == 0 {
		c.Breakout.BreakoutBufferPips = 5
	}

	if c.EMARSI.EMAFast == 0 {
		c.EMARSI.EMAFast = 50
	}
	if c.EMARSI.EMASlow == 0 {
		c.EMARSI.EMASlow = 200
	}
	if c.EMARSI.RSIPeriod == 0 {
		c.EMARSI.RSIPeriod = 14
	}
	if c.EMARSI.RSIPullbackLong == 0 {
		c.EMARSI.RSIPullbackLong = 30
	}
	if c.EMARSI.RSIPullbackShort == 0 {
		c.EMARSI.RSIPullbackShort = 70
	}
	if c.EMARSI.ATRPeriod == 0 {
		c.EMARSI.ATRPeriod = 14
	}
	if c.EMARSI.ATRMultStop == 0 {
		c.EMARSI.ATRMultStop = 1.5
	}

	if c.Limits.MaxSignals == 0 {
		c.Limits.MaxSignals = 5
	}
	if c.Limits.MaxPerSymbol == 0 {
		c.Limits.MaxPerSymbol = 2
	}

	if c.Chart.SaveDir == "" {
		c.Chart.SaveDir = "charts"
	}
	if c.Chart.Candles == 0 {
		c.Chart.Candles = 150
	}
	if c.Status.Timezone == "" {
		c.Status.Timezone = "Asia/Jerusalem"
	}

	if c.FTMORules.DailyLossLimitPercent == 0 {
		c.FTMORules.DailyLossLimitPercent = 5
	}
	if c.FTMORules.OverallLossLimitPercent == 0 {
		c.FTMORules.OverallLossLimitPercent = 10
	}
	if c.FTMORules.ProfitTargetPercent == 0 {
		c.FTMORules.ProfitTargetPercent = 10
	}
	if c.FTMORules.MinTradingDays == 0 {
		c.FTMORules.MinTradingDays = 10
	}
	if c.Account.Size == 0 {
		c.Account.Size = 100000
	}
	if c.Account.RiskPerTradePercent == 0 {
		c.Account.RiskPerTradePercent = 0.5
	}

	if len(c.Stocks.Universe) == 0 {
		c.Stocks.Universe = defaultUniverse
	}
	if c.Stocks.Limit == 0 {
		c.Stocks.Limit = 5
	}

	if len(c.Schedule.SignalCrons) == 0 {
		c.Schedule.SignalCrons = []string{"0 0 6 * * *", "0 0 14 * * *"}
	}
	if c.Schedule.StocksCron == "" {
		c.Schedule.StocksCron = "0 0 23 * * 1-5"
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderYahoo
	}
	if c.StateFile == "" {
		c.StateFile = "data/state.json"
	}
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: bot token is required (TOKEN_FTMO, TOKEN_STOCKS or BOT_TOKEN)", ErrInvalid)
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("%w: chat id is required (CHAT_ID_FTMO, CHAT_ID_STOCKS or CHAT_ID)", ErrInvalid)
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("%w: symbols must not be empty", ErrInvalid)
	}
	for _, tf := range c.Timeframes {
		if tf != model.Timeframe1D && tf != model.Timeframe1H {
			return fmt.Errorf("%w: unsupported timeframe %q", ErrInvalid, tf)
		}
	}
	if c.Limits.MaxSignals <= 0 {
		return fmt.Errorf("%w: limits.max_signals must be positive", ErrInvalid)
	}
	if c.Limits.MaxPerSymbol <= 0 {
		return fmt.Errorf("%w: limits.max_per_symbol must be positive", ErrInvalid)
	}
	if c.Limits.MinSignals < 0 {
		return fmt.Errorf("%w: limits.min_signals must not be negative", ErrInvalid)
	}
	if c.Breakout.ATRPeriod <= 0 || c.EMARSI.ATRPeriod <= 0 || c.EMARSI.RSIPeriod <= 0 {
		return fmt.Errorf("%w: indicator periods must be positive", ErrInvalid)
	}
	if c.EMARSI.EMAFast <= 0 || c.EMARSI.EMASlow <= 0 {
		return fmt.Errorf("%w: ema periods must be positive", ErrInvalid)
	}
	if c.Chart.Candles <= 0 {
		return fmt.Errorf("%w: chart.candles must be positive", ErrInvalid)
	}
	if c.Stocks.Limit <= 0 {
		return fmt.Errorf("%w: stocks.limit must be positive", ErrInvalid)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: status.timezone %q: %v", ErrInvalid, c.Status.Timezone, err)
	}
	for _, spec := range append(append([]string{}, c.Schedule.SignalCrons...), c.Schedule.StocksCron) {
		if _, err := CronParser.Parse(spec); err != nil {
			return fmt.Errorf("%w: cron %q: %v", ErrInvalid, spec, err)
		}
	}
	switch c.DataSource.Provider {
	case ProviderYahoo:
	case ProviderAlpaca:
		if c.DataSource.AlpacaAPIKey == "" || c.DataSource.AlpacaAPISecret == "" {
			return fmt.Errorf("%w: alpaca provider requires ALPACA_API_KEY and ALPACA_API_SECRET", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown data_source.provider %q", ErrInvalid, c.DataSource.Provider)
	}
	return nil
}

// Location returns the time zone used for dates and next-run times.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Status.Timezone)
}

// HasTimeframe reports whether tf is configured.
func (c *Config) HasTimeframe(tf model.Timeframe) bool {
	for _, t := range c.Timeframes {
		if t == tf {
			return true
		}
	}
	return false
}
