package cmd

import (
	"context"
	"fmt"
	"log"

	"SignalSentinel/internal/chart"
	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/config"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/scheduler"
	"SignalSentinel/internal/state"
)

// app is the wired bot.
type app struct {
	notifier *notifier.TelegramNotifier
	sched    *scheduler.Scheduler
	rec      recorder.Recorder
}

func (a *app) Close() {
	if err := a.rec.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
}

func newFetcher(c *config.Config) collector.Fetcher {
	if c.DataSource.Provider == config.ProviderAlpaca {
		return collector.NewAlpacaFetcher(c.DataSource.AlpacaAPIKey, c.DataSource.AlpacaAPISecret)
	}
	return collector.NewYahooFetcher(c.Proxy)
}

func newRecorder(c *config.Config) recorder.Recorder {
	if c.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(c.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func buildApp(ctx context.Context, c *config.Config) (*app, error) {
	fetcher := newFetcher(c)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	tn := notifier.NewTelegramNotifier(c.Telegram.BotToken, c.Telegram.ChatID, c.Proxy)
	tn.CommandChats = c.Telegram.CommandChatIDs
	rec := newRecorder(c)

	var news collector.NewsSource
	if c.Stocks.News {
		news = collector.NewYahooNews(c.Proxy)
	}

	sched, err := scheduler.NewScheduler(ctx, c, scheduler.Deps{
		Collector: collector.NewCollector(fetcher),
		Notifier:  tn,
		Charts:    chart.NewRenderer(),
		News:      news,
		Recorder:  rec,
		Tracker:   state.NewTracker(c.StateFile),
	})
	if err != nil {
		rec.Close()
		return nil, fmt.Errorf("init scheduler: %w", err)
	}
	return &app{notifier: tn, sched: sched, rec: rec}, nil
}
