package metrics

import coremetrics "github.com/leagueops/rosterd/core/metrics"

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordComputation forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordComputation(ev coremetrics.ComputationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordComputation(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordMove forwards the event to every sink that records moves.
func (m *MultiSink) RecordMove(ev coremetrics.MoveEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.MoveRecorder); ok {
			if err := rec.RecordMove(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
