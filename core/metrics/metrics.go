package metrics

import "time"

// ComputationEvent summarizes one balancing run for observability.
type ComputationEvent struct {
	ComputationID string
	Candidates    int
	Divisions     int
	Teams         int
	// ScoreSpread is the max-minus-min team score sum per division id.
	ScoreSpread map[string]float64
	// Swap counters from the local-search passes.
	DivisionSwaps  int
	GenderSwaps    int
	NewPlayerSwaps int
	ScoreSwaps     int
	Duration       time.Duration
	Time           time.Time
}

// MoveEvent records the outcome of one manual move request.
type MoveEvent struct {
	PlayerID       string
	FromDivisionID string
	ToDivisionID   string
	Accepted       bool
	Reason         string
	Time           time.Time
}

// Sink records balancing runs for observability purposes.
type Sink interface {
	RecordComputation(ev ComputationEvent) error
}

// MoveRecorder records manual move outcomes. Sinks implement it when the
// backend can store them.
type MoveRecorder interface {
	RecordMove(ev MoveEvent) error
}

// NopSink discards every event.
type NopSink struct{}

// RecordComputation implements Sink.
func (NopSink) RecordComputation(ComputationEvent) error { return nil }

// RecordMove implements MoveRecorder.
func (NopSink) RecordMove(MoveEvent) error { return nil }
