package scheduler

import (
	"context"
	"errors"
	"log"

	"SignalSentinel/internal/chart"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/strategy"
)

// signalTimeframes is the evaluation order within a symbol.
var signalTimeframes = []model.Timeframe{model.Timeframe1D, model.Timeframe1H}

// SignalsSummary reports what one signal run did.
type SignalsSummary struct {
	Outcomes   []model.Outcome
	Candidates int
	Selected   []model.TradeIdea
	Sent       int
}

// RunSignals gathers ideas for every configured symbol and timeframe, ranks
// and caps them, and delivers each selected idea with its chart.
func (s *Scheduler) RunSignals(ctx context.Context) SignalsSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("[INFO] running signals task")
	s.Collector.Reset()
	s.trySend(ctx, notifier.FormatHeader(s.Config.Account, s.Config.FTMORules))

	var sum SignalsSummary
	sum.Outcomes = s.gatherOutcomes(ctx)
	ideas := strategy.CollectIdeas(sum.Outcomes)
	sum.Candidates = len(ideas)
	sum.Selected = strategy.Rank(ideas, s.Config.Limits)
	log.Printf("[INFO] %d candidate ideas, %d selected", sum.Candidates, len(sum.Selected))

	run := &recorder.RunRecord{ID: recorder.NewID(), Kind: "SIGNALS", Candidates: sum.Candidates, Selected: len(sum.Selected)}
	for _, idea := range sum.Selected {
		delivery := s.deliverIdea(ctx, idea)
		if delivery != recorder.DeliveryFailed {
			sum.Sent++
		}
		if err := s.Recorder.RecordIdea(&recorder.IdeaRecord{RunID: run.ID, Idea: idea, Delivery: delivery}); err != nil {
			log.Printf("[ERROR] record idea %s: %v", idea.Symbol, err)
		}
	}

	if sum.Sent == 0 {
		s.trySend(ctx, notifier.NoSetupsMessage)
	}

	now := s.Now().In(s.loc)
	st := s.Tracker.Record(now.Format("2006-01-02"), sum.Sent)
	if s.Config.Status.SendStatus {
		s.trySend(ctx, notifier.FormatStatus(notifier.StatusView{
			Date:     now.Format("2006-01-02"),
			Timezone: s.Config.Status.Timezone,
			FromRun:  true,
			Sent:     sum.Sent,
			DaysDone: len(st.DaysWithSignals),
			Upcoming: s.NextRuns(now),
			Rules:    s.Config.FTMORules,
		}))
	}

	for _, o := range sum.Outcomes {
		if o.Err != nil || o.Skip != model.SkipNone {
			run.Skipped++
		}
	}
	run.Sent = sum.Sent
	s.recordRun(run)
	return sum
}

// gatherOutcomes evaluates each symbol on each enabled timeframe in turn.
// A failed fetch becomes an outcome with Err and the loop continues.
func (s *Scheduler) gatherOutcomes(ctx context.Context) []model.Outcome {
	var outcomes []model.Outcome
	for _, sym := range s.Config.Symbols {
		for _, tf := range signalTimeframes {
			if !s.Config.HasTimeframe(tf) || !s.Engine.Enabled(tf) {
				continue
			}
			if ctx.Err() != nil {
				log.Printf("[WARN] signals run cancelled: %v", ctx.Err())
				return outcomes
			}

			bars, err := s.Collector.History(ctx, sym, tf)
			if err != nil {
				log.Printf("[WARN] %s %s: %v", sym, tf, err)
				outcomes = append(outcomes, model.Outcome{Symbol: sym, Timeframe: tf, Err: err})
				continue
			}
			out := s.Engine.Evaluate(sym, tf, bars)
			switch {
			case out.Err != nil:
				log.Printf("[WARN] %s %s: %v", sym, tf, out.Err)
			case out.Skip != model.SkipNone:
				log.Printf("[INFO] %s %s skipped: %s", sym, tf, out.Skip)
			}
			outcomes = append(outcomes, out)
		}
	}
	return outcomes
}

// deliverIdea sends the idea as a chart photo with caption, or as text with a
// note about the chart failure.
func (s *Scheduler) deliverIdea(ctx context.Context, idea model.TradeIdea) recorder.Delivery {
	msg := notifier.FormatIdea(idea)
	if !s.Config.Chart.Enabled {
		if s.trySend(ctx, msg) {
			return recorder.DeliveryText
		}
		return recorder.DeliveryFailed
	}

	err := s.sendIdeaChart(ctx, idea, msg)
	if err == nil {
		return recorder.DeliveryPhoto
	}
	log.Printf("[ERROR] chart for %s %s: %v", idea.Symbol, idea.Timeframe, err)
	if s.trySend(ctx, notifier.FormatChartProblem(msg, err)) {
		return recorder.DeliveryText
	}
	return recorder.DeliveryFailed
}

func (s *Scheduler) sendIdeaChart(ctx context.Context, idea model.TradeIdea, caption string) error {
	bars, ok := s.Collector.Cached(idea.Symbol, idea.Timeframe)
	if !ok {
		return errors.New("price history not available")
	}
	targets := idea.Targets
	path, err := s.Charts.Render(chart.Request{
		Symbol:    idea.Symbol,
		Timeframe: idea.Timeframe,
		Bars:      bars,
		Entry:     idea.Entry,
		Stop:      idea.Stop,
		Targets:   targets[:],
		SaveDir:   s.Config.Chart.SaveDir,
		Candles:   s.Config.Chart.Candles,
	})
	if err != nil {
		return err
	}
	return s.Notifier.SendPhoto(ctx, path, caption)
}
