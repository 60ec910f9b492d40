// Package state persists the small record of which days produced signals.
package state

import (
	"log"
	"slices"
	"sync"

	"SignalSentinel/internal/model"
)

// Tracker guards the run state shared by cron runs and chat commands.
type Tracker struct {
	mu       sync.Mutex
	filePath string
}

// NewTracker creates a Tracker backed by filePath.
func NewTracker(filePath string) *Tracker {
	return &Tracker{filePath: filePath}
}

// GetState returns the persisted state, or a fresh one when it cannot be read.
func (t *Tracker) GetState() model.RunState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.load()
}

// Record marks today as the first run if none is set, and as a day with
// signals when sent is positive, then rewrites the file. A failed write is
// logged and the updated state is still returned.
func (t *Tracker) Record(today string, sent int) model.RunState {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.load()
	if state.FirstRun == "" {
		state.FirstRun = today
	}
	if sent > 0 && !slices.Contains(state.DaysWithSignals, today) {
		state.DaysWithSignals = append(state.DaysWithSignals, today)
	}
	if state.DaysWithSignals == nil {
		state.DaysWithSignals = []string{}
	}

	if err := SaveState(t.filePath, state); err != nil {
		log.Printf("[ERROR] failed to save run state: %v", err)
	}
	return *state
}

func (t *Tracker) load() *model.RunState {
	state, err := LoadState(t.filePath)
	if err != nil {
		log.Printf("[WARN] read run state %s: %v, starting fresh", t.filePath, err)
		return &model.RunState{}
	}
	return state
}
