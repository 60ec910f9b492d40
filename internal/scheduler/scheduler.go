package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"SignalSentinel/internal/chart"
	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/config"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/scanner"
	"SignalSentinel/internal/state"
	"SignalSentinel/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Sender delivers chat messages.
type Sender interface {
	Send(ctx context.Context, text string) error
	SendPlain(ctx context.Context, text string) error
	SendPhoto(ctx context.Context, path, caption string) error
}

// ChartRenderer draws a chart and returns the image path.
type ChartRenderer interface {
	Render(req chart.Request) (string, error)
}

// Deps are the collaborators of a Scheduler. News may be nil.
type Deps struct {
	Collector *collector.Collector
	Notifier  Sender
	Charts    ChartRenderer
	News      collector.NewsSource
	Recorder  recorder.Recorder
	Tracker   *state.Tracker
}

// Scheduler manages the cron tasks and runs the signal, stock and status jobs.
// Runs are serialized, so a chat command never overlaps a cron run.
type Scheduler struct {
	Cron      *cron.Cron
	Config    *config.Config
	Collector *collector.Collector
	Engine    *strategy.Engine
	Scanner   *scanner.Scanner
	Notifier  Sender
	Charts    ChartRenderer
	News      collector.NewsSource
	Recorder  recorder.Recorder
	Tracker   *state.Tracker
	Ctx       context.Context
	Now       func() time.Time

	loc *time.Location
	mu  sync.Mutex
}

// NewScheduler creates a new Scheduler from a validated config.
func NewScheduler(ctx context.Context, cfg *config.Config, deps Deps) (*Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	rec := deps.Recorder
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Config:    cfg,
		Collector: deps.Collector,
		Engine:    strategy.NewEngine(cfg.Breakout, cfg.EMARSI),
		Scanner:   scanner.NewScanner(deps.Collector),
		Notifier:  deps.Notifier,
		Charts:    deps.Charts,
		News:      deps.News,
		Recorder:  rec,
		Tracker:   deps.Tracker,
		Ctx:       ctx,
		Now:       time.Now,
		loc:       loc,
	}, nil
}

// RegisterAll registers the signal runs and the stock report.
func (s *Scheduler) RegisterAll() error {
	for _, spec := range s.Config.Schedule.SignalCrons {
		if _, err := s.Cron.AddFunc(spec, func() { s.RunSignals(s.Ctx) }); err != nil {
			return fmt.Errorf("register signals task %q: %w", spec, err)
		}
	}
	if _, err := s.Cron.AddFunc(s.Config.Schedule.StocksCron, func() { s.RunStocks(s.Ctx) }); err != nil {
		return fmt.Errorf("register stocks task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/signals":
		s.RunSignals(ctx)
		return ""
	case "/stocks":
		s.RunStocks(ctx)
		return ""
	case "/status":
		return s.StatusMessage()
	default:
		return notifier.HelpText
	}
}

// StatusMessage formats the current state without recording a run.
func (s *Scheduler) StatusMessage() string {
	now := s.Now().In(s.loc)
	st := s.Tracker.GetState()
	return notifier.FormatStatus(notifier.StatusView{
		Date:     now.Format("2006-01-02"),
		Timezone: s.Config.Status.Timezone,
		DaysDone: len(st.DaysWithSignals),
		Upcoming: s.NextRuns(now),
		Rules:    s.Config.FTMORules,
	})
}

// NextRuns lists the signal runs still due on the day of now as "15:04".
// When none remain it returns the earliest later run, prefixed with its weekday.
func (s *Scheduler) NextRuns(now time.Time) []string {
	now = now.In(s.loc)
	y, m, d := now.Date()

	var today []time.Time
	var earliest time.Time
	for _, spec := range s.Config.Schedule.SignalCrons {
		sched, err := config.CronParser.Parse(spec)
		if err != nil {
			continue
		}
		for t := sched.Next(now); !t.IsZero(); t = sched.Next(t) {
			if ty, tm, td := t.Date(); ty != y || tm != m || td != d {
				if earliest.IsZero() || t.Before(earliest) {
					earliest = t
				}
				break
			}
			today = append(today, t)
		}
	}

	if len(today) == 0 {
		if earliest.IsZero() {
			return nil
		}
		return []string{earliest.Format("Mon 15:04")}
	}
	sort.Slice(today, func(i, j int) bool { return today[i].Before(today[j]) })
	out := make([]string, 0, len(today))
	for _, t := range today {
		if hm := t.Format("15:04"); len(out) == 0 || out[len(out)-1] != hm {
			out = append(out, hm)
		}
	}
	return out
}

func (s *Scheduler) trySend(ctx context.Context, text string) bool {
	if err := s.Notifier.Send(ctx, text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
		return false
	}
	return true
}

func (s *Scheduler) trySendPlain(ctx context.Context, text string) bool {
	if err := s.Notifier.SendPlain(ctx, text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
		return false
	}
	return true
}

func (s *Scheduler) recordRun(run *recorder.RunRecord) {
	if err := s.Recorder.RecordRun(run); err != nil {
		log.Printf("[ERROR] record %s run: %v", run.Kind, err)
	}
}
