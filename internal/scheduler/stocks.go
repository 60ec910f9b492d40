package scheduler

import (
	"context"
	"log"

	"SignalSentinel/internal/chart"
	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/scanner"
)

// StockChartDays is the daily history drawn on hot stock charts.
const StockChartDays = 90

// StocksSummary reports what one stock report did.
type StocksSummary struct {
	Report scanner.Report
	Sent   int
}

// RunStocks scans the universe with strict thresholds, falls back to the
// relaxed ones when nothing qualifies, and sends one message and chart per
// hot stock.
func (s *Scheduler) RunStocks(ctx context.Context) StocksSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("[INFO] running stocks task")
	cfg := s.Config.Stocks
	run := &recorder.RunRecord{ID: recorder.NewID(), Kind: "STOCKS"}

	rep := s.Scanner.Scan(ctx, cfg.Universe, cfg.Limit, true)
	skipped := len(rep.Skipped)
	if len(rep.Stocks) == 0 {
		s.trySendPlain(ctx, notifier.StrictEmptyMessage)
		rep = s.Scanner.Scan(ctx, cfg.Universe, cfg.Limit, false)
		skipped += len(rep.Skipped)
		run.Note = "relaxed"
	}

	sum := StocksSummary{Report: rep}
	run.Candidates = len(cfg.Universe)
	run.Selected = len(rep.Stocks)
	run.Skipped = skipped

	if len(rep.Stocks) == 0 {
		s.trySendPlain(ctx, notifier.NothingFoundMessage)
		s.recordRun(run)
		return sum
	}

	for _, hs := range rep.Stocks {
		delivery := s.deliverHotStock(ctx, hs)
		if delivery != recorder.DeliveryFailed {
			sum.Sent++
		}
		if err := s.Recorder.RecordHotStock(&recorder.HotStockRecord{RunID: run.ID, Stock: hs, Delivery: delivery}); err != nil {
			log.Printf("[ERROR] record hot stock %s: %v", hs.Ticker, err)
		}
	}

	run.Sent = sum.Sent
	s.recordRun(run)
	return sum
}

func (s *Scheduler) headline(ctx context.Context, ticker string) string {
	if s.News == nil || !s.Config.Stocks.News {
		return collector.NoNews
	}
	h, err := s.News.Headline(ctx, ticker)
	if err != nil {
		log.Printf("[WARN] news for %s: %v", ticker, err)
		return collector.NoNews
	}
	return h
}

// deliverHotStock sends the text first; the chart follows as a separate photo
// and its failure does not undo the text delivery.
func (s *Scheduler) deliverHotStock(ctx context.Context, hs model.HotStock) recorder.Delivery {
	if !s.trySendPlain(ctx, notifier.FormatHotStock(hs, s.headline(ctx, hs.Ticker))) {
		return recorder.DeliveryFailed
	}
	if !s.Config.Chart.Enabled {
		return recorder.DeliveryText
	}

	bars, err := s.Collector.Daily(ctx, hs.Ticker, StockChartDays)
	if err != nil {
		log.Printf("[WARN] chart history for %s: %v", hs.Ticker, err)
		return recorder.DeliveryText
	}
	targets := hs.Targets
	path, err := s.Charts.Render(chart.Request{
		Symbol:    hs.Ticker,
		Timeframe: model.Timeframe1D,
		Bars:      bars,
		Entry:     hs.Entry,
		Stop:      hs.Stop,
		Targets:   targets[:],
		SaveDir:   s.Config.Chart.SaveDir,
		Candles:   s.Config.Chart.Candles,
	})
	if err != nil {
		log.Printf("[ERROR] chart for %s: %v", hs.Ticker, err)
		return recorder.DeliveryText
	}
	if err := s.Notifier.SendPhoto(ctx, path, ""); err != nil {
		log.Printf("[ERROR] send chart for %s: %v", hs.Ticker, err)
		return recorder.DeliveryText
	}
	return recorder.DeliveryPhoto
}
