package model

import "time"

// RunState tracks the first run date and the days on which signals were sent.
type RunState struct {
	FirstRun        string    `json:"first_run"`
	DaysWithSignals []string  `json:"days_with_signals"`
	UpdatedAt       time.Time `json:"updated_at"`
}
