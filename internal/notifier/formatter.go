package notifier

import (
	"fmt"
	"strings"

	"SignalSentinel/internal/model"

	"github.com/dustin/go-humanize"
)

const (
	NoSetupsMessage     = "No setups meet the criteria right now. We will check again on the next run."
	StrictEmptyMessage  = "⚠️ No stocks matched the strict criteria. Searching with relaxed criteria..."
	NothingFoundMessage = "❌ No stocks matched the relaxed criteria either today."
	disclaimer          = "_Note_: educational signal only; not a trade instruction."
)

// HelpText lists the bot commands.
const HelpText = `*Commands*
/signals - run the FX/metals signal scan now
/stocks - run the hot stock scanner now
/status - show trading days progress and next runs`

// FormatPrice prints prices of 100 and above with 2 decimals and smaller
// prices with 5.
func FormatPrice(x float64) string {
	if x >= 100 {
		return fmt.Sprintf("%.2f", x)
	}
	return fmt.Sprintf("%.5f", x)
}

// FormatHeader formats the message sent at the start of every signal run.
func FormatHeader(acc model.Account, rules model.FTMORules) string {
	var b strings.Builder
	b.WriteString("*FTMO Signals Bot (Educational)*\n")
	b.WriteString(fmt.Sprintf("Account (label): %.0f$ | Risk/trade: %.2f%%\n", acc.Size, acc.RiskPerTradePercent))
	b.WriteString(fmt.Sprintf("FTMO rules (info): Daily %g%% | Overall %g%% | Target %g%% | Min days %d",
		rules.DailyLossLimitPercent, rules.OverallLossLimitPercent, rules.ProfitTargetPercent, rules.MinTradingDays))
	return b.String()
}

// FormatIdea formats one trade idea. It doubles as a photo caption.
func FormatIdea(idea model.TradeIdea) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("*%s* (TF: %s) – *%s*\n", idea.Symbol, idea.Timeframe, idea.Direction))
	b.WriteString(fmt.Sprintf("Entry: `%s` | SL: `%s`\n", FormatPrice(idea.Entry), FormatPrice(idea.Stop)))
	b.WriteString(fmt.Sprintf("TP1: `%s` | TP2: `%s` | TP3: `%s`\n",
		FormatPrice(idea.Targets[0]), FormatPrice(idea.Targets[1]), FormatPrice(idea.Targets[2])))
	rrs := make([]string, len(idea.RRs))
	for i, rr := range idea.RRs {
		rrs[i] = fmt.Sprintf("`1:%g`", rr)
	}
	b.WriteString(fmt.Sprintf("R:R: %s\n", strings.Join(rrs, ", ")))
	b.WriteString(fmt.Sprintf("Reason: %s\n", idea.Reason))
	b.WriteString(disclaimer + "\n")
	return b.String()
}

// FormatChartProblem appends the chart failure note to an idea message. The
// error goes into a code span so that underscores in API bodies or file
// names are not read as Markdown.
func FormatChartProblem(msg string, err error) string {
	text := strings.ReplaceAll(err.Error(), "`", "'")
	return fmt.Sprintf("%s\n(chart problem: `%s`)", msg, text)
}

// StatusView is the data shown in the status message. Sent is only shown
// when the view comes from a signal run.
type StatusView struct {
	Date     string
	Timezone string
	FromRun  bool
	Sent     int
	DaysDone int
	Upcoming []string
	Rules    model.FTMORules
}

// FormatStatus formats the trading days progress message.
func FormatStatus(v StatusView) string {
	upcoming := "-"
	if len(v.Upcoming) > 0 {
		upcoming = strings.Join(v.Upcoming, ", ")
	}
	var b strings.Builder
	b.WriteString("*FTMO Status*\n")
	b.WriteString(fmt.Sprintf("Day: %s (%s)\n", v.Date, v.Timezone))
	if v.FromRun {
		b.WriteString(fmt.Sprintf("Signals sent now: %d\n", v.Sent))
	}
	b.WriteString(fmt.Sprintf("Trading days with signals so far: %d/%d\n", v.DaysDone, v.Rules.MinTradingDays))
	b.WriteString(fmt.Sprintf("Next runs: %s\n", upcoming))
	b.WriteString(fmt.Sprintf("FTMO rules (info): Daily loss %g%% | Overall loss %g%% | Profit target %g%%",
		v.Rules.DailyLossLimitPercent, v.Rules.OverallLossLimitPercent, v.Rules.ProfitTargetPercent))
	return b.String()
}

// FormatHotStock formats a scanner hit. The result is meant to be sent
// without a parse mode since the headline is third-party text.
func FormatHotStock(s model.HotStock, news string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 Hot stock: %s\n", s.Ticker))
	b.WriteString(fmt.Sprintf("🏷️ Sector: %s\n\n", s.Sector))
	b.WriteString(fmt.Sprintf("💵 Entry: %.2f\n", s.Entry))
	b.WriteString(fmt.Sprintf("🔻 Stop: %.2f\n", s.Stop))
	for i, t := range s.Targets {
		rr := model.RRRatio(s.Entry, s.Stop, t, true)
		b.WriteString(fmt.Sprintf("🎯 Target %d (1:%.0f): %.2f\n", i+1, rr, t))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("📈 Daily change: %+.2f%%\n", s.ChangePct))
	b.WriteString(fmt.Sprintf("📦 Volume: %s (%.1fx avg)\n", humanize.Comma(int64(s.Volume)), s.VolumeRatio))
	if !s.Strict {
		b.WriteString("🔎 Relaxed criteria\n")
	}
	b.WriteString(fmt.Sprintf("📰 News: %s\n", news))
	return b.String()
}
