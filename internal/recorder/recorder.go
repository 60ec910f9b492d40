package recorder

import "SignalSentinel/internal/model"

// Delivery describes how an alert reached the chat.
type Delivery string

const (
	DeliveryPhoto  Delivery = "PHOTO"
	DeliveryText   Delivery = "TEXT"
	DeliveryFailed Delivery = "FAILED"
)

// RunRecord summarizes one signals or stocks run.
type RunRecord struct {
	ID         string
	Kind       string // "SIGNALS" or "STOCKS"
	Candidates int
	Selected   int
	Sent       int
	Skipped    int
	Note       string
}

// IdeaRecord holds one ranked idea and its delivery result.
type IdeaRecord struct {
	RunID    string
	Idea     model.TradeIdea
	Delivery Delivery
}

// HotStockRecord holds one scanner hit and its delivery result.
type HotStockRecord struct {
	RunID    string
	Stock    model.HotStock
	Delivery Delivery
}

// Recorder persists delivered alerts for later review.
type Recorder interface {
	RecordRun(run *RunRecord) error
	RecordIdea(rec *IdeaRecord) error
	RecordHotStock(rec *HotStockRecord) error
	Close() error
}
