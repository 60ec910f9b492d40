package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"SignalSentinel/internal/chart"
	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/config"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	kind    string // "md", "plain" or "photo"
	text    string
	path    string
	caption string
}

type fakeSender struct {
	msgs     []message
	sendErr  error
	photoErr error
	strictMD bool
}

var codeSpan = regexp.MustCompile("`[^`]*`")

// balancedMarkdown reports whether every _ and * outside code spans is
// paired, which is what the Bot API requires of Markdown messages.
func balancedMarkdown(text string) bool {
	rest := codeSpan.ReplaceAllString(text, "")
	return strings.Count(rest, "_")%2 == 0 && strings.Count(rest, "*")%2 == 0
}

func (f *fakeSender) Send(_ context.Context, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	if f.strictMD && !balancedMarkdown(text) {
		return errors.New(`telegram API error: status 400, body: {"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`)
	}
	f.msgs = append(f.msgs, message{kind: "md", text: text})
	return nil
}

func (f *fakeSender) SendPlain(_ context.Context, text string) error {
	f.msgs = append(f.msgs, message{kind: "plain", text: text})
	return nil
}

func (f *fakeSender) SendPhoto(_ context.Context, path, caption string) error {
	if f.photoErr != nil {
		return f.photoErr
	}
	f.msgs = append(f.msgs, message{kind: "photo", path: path, caption: caption})
	return nil
}

func (f *fakeSender) kinds(kind string) []message {
	var out []message
	for _, m := range f.msgs {
		if m.kind == kind {
			out = append(out, m)
		}
	}
	return out
}

type fakeCharts struct {
	reqs []chart.Request
	err  error
}

func (f *fakeCharts) Render(req chart.Request) (string, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return "", f.err
	}
	return filepath.Join(req.SaveDir, req.Symbol+".png"), nil
}

type fakeNews struct{}

func (fakeNews) Headline(_ context.Context, ticker string) (string, error) {
	return ticker + " beats estimates", nil
}

type fakeRecorder struct {
	runs   []recorder.RunRecord
	ideas  []recorder.IdeaRecord
	stocks []recorder.HotStockRecord
}

func (f *fakeRecorder) RecordRun(r *recorder.RunRecord) error {
	f.runs = append(f.runs, *r)
	return nil
}
func (f *fakeRecorder) RecordIdea(r *recorder.IdeaRecord) error {
	f.ideas = append(f.ideas, *r)
	return nil
}
func (f *fakeRecorder) RecordHotStock(r *recorder.HotStockRecord) error {
	f.stocks = append(f.stocks, *r)
	return nil
}
func (f *fakeRecorder) Close() error { return nil }

type fixture struct {
	s       *Scheduler
	fetcher *collector.MockFetcher
	sender  *fakeSender
	charts  *fakeCharts
	rec     *fakeRecorder
	tracker *state.Tracker
}

// friday10 is Friday 2024-03-01 10:00 UTC.
var friday10 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	cfg.Symbols = []string{"EURUSD=X", "GBPUSD=X"}
	cfg.Status.Timezone = "UTC"
	cfg.Schedule.SignalCrons = []string{"0 0 6 * * *", "0 0 14 * * *"}
	cfg.Chart.SaveDir = filepath.Join(dir, "charts")
	cfg.Stocks.Universe = []model.Ticker{{Symbol: "AAA", Sector: "Technology"}, {Symbol: "BBB"}}
	cfg.Stocks.Limit = 5

	f := &fixture{
		fetcher: &collector.MockFetcher{Bars: map[string][]model.OHLCV{
			collector.MockKey("EURUSD=X", model.Timeframe1D): collector.GenerateMockBars(1.1, 40),
			collector.MockKey("GBPUSD=X", model.Timeframe1D): collector.GenerateMockBars(1.3, 40),
		}, Errs: map[string]error{}},
		sender:  &fakeSender{},
		charts:  &fakeCharts{},
		rec:     &fakeRecorder{},
		tracker: state.NewTracker(filepath.Join(dir, "state.json")),
	}
	f.s, err = NewScheduler(context.Background(), cfg, Deps{
		Collector: collector.NewCollector(f.fetcher),
		Notifier:  f.sender,
		Charts:    f.charts,
		News:      fakeNews{},
		Recorder:  f.rec,
		Tracker:   f.tracker,
	})
	require.NoError(t, err)
	f.s.Now = func() time.Time { return friday10 }
	return f
}

func TestRunSignals_SendsChartsAndStatus(t *testing.T) {
	f := newFixture(t)

	sum := f.s.RunSignals(context.Background())

	assert.Equal(t, 4, sum.Candidates)
	assert.Len(t, sum.Selected, 4)
	assert.Equal(t, 4, sum.Sent)
	require.Len(t, sum.Outcomes, 4)
	assert.Equal(t, model.SkipNoData, sum.Outcomes[1].Skip, "hourly history is empty")

	require.Len(t, f.sender.msgs, 6)
	assert.Contains(t, f.sender.msgs[0].text, "FTMO Signals Bot")
	photos := f.sender.kinds("photo")
	require.Len(t, photos, 4)
	assert.Contains(t, photos[0].caption, "(TF: 1d)")
	status := f.sender.msgs[5].text
	assert.Contains(t, status, "Signals sent now: 4")
	assert.Contains(t, status, "Trading days with signals so far: 1/10")
	assert.Contains(t, status, "Next runs: 14:00")

	require.Len(t, f.charts.reqs, 4)
	assert.Len(t, f.charts.reqs[0].Bars, 40)
	assert.Len(t, f.charts.reqs[0].Targets, 3)
	assert.Equal(t, 150, f.charts.reqs[0].Candles)

	st := f.tracker.GetState()
	assert.Equal(t, "2024-03-01", st.FirstRun)
	assert.Equal(t, []string{"2024-03-01"}, st.DaysWithSignals)

	require.Len(t, f.rec.ideas, 4)
	for _, r := range f.rec.ideas {
		assert.Equal(t, recorder.DeliveryPhoto, r.Delivery)
	}
	require.Len(t, f.rec.runs, 1)
	assert.Equal(t, recorder.RunRecord{ID: f.rec.runs[0].ID, Kind: "SIGNALS", Candidates: 4, Selected: 4, Sent: 4, Skipped: 2}, f.rec.runs[0])
	assert.Equal(t, 4, f.fetcher.Calls, "one fetch per series, charts reuse the cache")
}

func TestRunSignals_ChartFailureFallsBackToText(t *testing.T) {
	f := newFixture(t)
	f.charts.err = errors.New("disk full")

	sum := f.s.RunSignals(context.Background())

	assert.Equal(t, 4, sum.Sent)
	assert.Empty(t, f.sender.kinds("photo"))
	texts := f.sender.kinds("md")
	require.Len(t, texts, 6)
	assert.True(t, strings.HasSuffix(texts[1].text, "(chart problem: `disk full`)"))
	for _, r := range f.rec.ideas {
		assert.Equal(t, recorder.DeliveryText, r.Delivery)
	}
}

func TestRunSignals_FallbackTextIsValidMarkdown(t *testing.T) {
	f := newFixture(t)
	f.sender.strictMD = true
	f.sender.photoErr = errors.New(`telegram API error: status 400, body: {"ok":false,"error_code":400,"description":"Bad Request: file_id invalid"}`)

	sum := f.s.RunSignals(context.Background())

	assert.Equal(t, 4, sum.Sent)
	require.Len(t, f.rec.ideas, 4)
	for _, r := range f.rec.ideas {
		assert.Equal(t, recorder.DeliveryText, r.Delivery)
	}
	texts := f.sender.kinds("md")
	require.Len(t, texts, 6)
	assert.Contains(t, texts[1].text, "error_code")
	for _, m := range texts {
		assert.True(t, balancedMarkdown(m.text), m.text)
	}
}

func TestRunSignals_ChartPathErrorFallsBack(t *testing.T) {
	f := newFixture(t)
	f.sender.strictMD = true
	f.charts.err = errors.New("chart: create file: open charts/EURUSDX_1d_20240301_100000.png: permission denied")

	sum := f.s.RunSignals(context.Background())

	assert.Equal(t, 4, sum.Sent)
	for _, r := range f.rec.ideas {
		assert.Equal(t, recorder.DeliveryText, r.Delivery)
	}
}

func TestRunSignals_NoSetups(t *testing.T) {
	f := newFixture(t)
	f.fetcher.Errs["EURUSD=X"] = errors.New("timeout")
	f.fetcher.Errs["GBPUSD=X"] = errors.New("timeout")

	sum := f.s.RunSignals(context.Background())

	assert.Zero(t, sum.Sent)
	for _, o := range sum.Outcomes {
		assert.Error(t, o.Err)
	}
	require.Len(t, f.sender.msgs, 3)
	assert.Equal(t, notifier.NoSetupsMessage, f.sender.msgs[1].text)
	assert.Contains(t, f.sender.msgs[2].text, "Signals sent now: 0")

	st := f.tracker.GetState()
	assert.Equal(t, "2024-03-01", st.FirstRun)
	assert.Empty(t, st.DaysWithSignals)
}

func TestRunSignals_DeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.sender.photoErr = errors.New("telegram down")
	f.sender.sendErr = errors.New("telegram down")

	sum := f.s.RunSignals(context.Background())

	assert.Zero(t, sum.Sent)
	require.Len(t, f.rec.ideas, 4)
	assert.Equal(t, recorder.DeliveryFailed, f.rec.ideas[0].Delivery)
	assert.Empty(t, f.tracker.GetState().DaysWithSignals)
}

func TestRunSignals_StatusDisabledStillRecordsDay(t *testing.T) {
	f := newFixture(t)
	f.s.Config.Status.SendStatus = false

	f.s.RunSignals(context.Background())

	assert.Len(t, f.sender.msgs, 5)
	assert.Equal(t, []string{"2024-03-01"}, f.tracker.GetState().DaysWithSignals)
}

func TestNextRuns(t *testing.T) {
	f := newFixture(t)
	at := func(h int) time.Time { return time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC) }

	assert.Equal(t, []string{"06:00", "14:00"}, f.s.NextRuns(at(5)))
	assert.Equal(t, []string{"14:00"}, f.s.NextRuns(at(6)))
	assert.Equal(t, []string{"Sat 06:00"}, f.s.NextRuns(at(15)))

	f.s.Config.Schedule.SignalCrons = []string{"0 0 14 * * *", "0 0 6,14 * * *"}
	assert.Equal(t, []string{"06:00", "14:00"}, f.s.NextRuns(at(5)))
}

// stockBars builds 9 flat bars at 100 with volume 1000 and a last bar at
// lastClose with lastVolume.
func stockBars(lastClose, lastVolume float64) []model.OHLCV {
	start := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	var bars []model.OHLCV
	for i := 0; i < 9; i++ {
		bars = append(bars, model.OHLCV{Time: start.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000})
	}
	return append(bars, model.OHLCV{Time: start.AddDate(0, 0, 9), Open: 100, High: lastClose + 1, Low: 99, Close: lastClose, Volume: lastVolume})
}

func TestRunStocks_Strict(t *testing.T) {
	f := newFixture(t)
	f.fetcher.Bars[collector.MockKey("AAA", model.Timeframe1D)] = stockBars(104, 5000)
	f.fetcher.Bars[collector.MockKey("BBB", model.Timeframe1D)] = stockBars(100, 1000)

	sum := f.s.RunStocks(context.Background())

	require.Len(t, sum.Report.Stocks, 1)
	assert.True(t, sum.Report.Strict)
	assert.Equal(t, 1, sum.Sent)
	require.Len(t, f.sender.msgs, 2)
	assert.Equal(t, "plain", f.sender.msgs[0].kind)
	assert.Contains(t, f.sender.msgs[0].text, "Hot stock: AAA")
	assert.Contains(t, f.sender.msgs[0].text, "News: AAA beats estimates")
	assert.Equal(t, "photo", f.sender.msgs[1].kind)
	assert.Empty(t, f.sender.msgs[1].caption)

	require.Len(t, f.charts.reqs, 1)
	assert.Equal(t, []float64{110.24, 113.36, 119.6}, f.charts.reqs[0].Targets)

	require.Len(t, f.rec.stocks, 1)
	assert.Equal(t, recorder.DeliveryPhoto, f.rec.stocks[0].Delivery)
	require.Len(t, f.rec.runs, 1)
	assert.Equal(t, "STOCKS", f.rec.runs[0].Kind)
	assert.Equal(t, 1, f.rec.runs[0].Skipped)
}

func TestRunStocks_FallsBackToRelaxed(t *testing.T) {
	f := newFixture(t)
	f.s.Config.Chart.Enabled = false
	f.fetcher.Bars[collector.MockKey("AAA", model.Timeframe1D)] = stockBars(102.5, 1500)
	f.fetcher.Bars[collector.MockKey("BBB", model.Timeframe1D)] = stockBars(100, 1000)

	sum := f.s.RunStocks(context.Background())

	require.Len(t, sum.Report.Stocks, 1)
	assert.False(t, sum.Report.Strict)
	require.Len(t, f.sender.msgs, 2)
	assert.Equal(t, notifier.StrictEmptyMessage, f.sender.msgs[0].text)
	assert.Contains(t, f.sender.msgs[1].text, "Relaxed criteria")
	assert.Empty(t, f.charts.reqs)
	assert.Equal(t, recorder.DeliveryText, f.rec.stocks[0].Delivery)
	assert.Equal(t, "relaxed", f.rec.runs[0].Note)
}

func TestRunStocks_NothingFound(t *testing.T) {
	f := newFixture(t)
	f.fetcher.Errs["AAA"] = errors.New("404")
	f.fetcher.Bars[collector.MockKey("BBB", model.Timeframe1D)] = stockBars(100, 1000)

	sum := f.s.RunStocks(context.Background())

	assert.Empty(t, sum.Report.Stocks)
	require.Len(t, f.sender.msgs, 2)
	assert.Equal(t, notifier.StrictEmptyMessage, f.sender.msgs[0].text)
	assert.Equal(t, notifier.NothingFoundMessage, f.sender.msgs[1].text)
	require.Len(t, f.rec.runs, 1)
	assert.Equal(t, 4, f.rec.runs[0].Skipped)
	assert.Zero(t, f.rec.runs[0].Sent)
}

func TestHandleCommand(t *testing.T) {
	f := newFixture(t)

	status := f.s.HandleCommand(context.Background(), "/status")
	assert.Contains(t, status, "FTMO Status")
	assert.Contains(t, status, "Next runs: 14:00")
	assert.NotContains(t, status, "Signals sent now")
	assert.Empty(t, f.sender.msgs)

	assert.Equal(t, notifier.HelpText, f.s.HandleCommand(context.Background(), "/start"))

	assert.Empty(t, f.s.HandleCommand(context.Background(), "/signals"))
	assert.NotEmpty(t, f.sender.msgs)
}

func TestRegisterAll(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.RegisterAll())
	assert.Len(t, f.s.Cron.Entries(), 3)

	f.s.Config.Schedule.StocksCron = "nonsense"
	assert.Error(t, f.s.RegisterAll())
}
