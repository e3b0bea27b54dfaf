package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/leagueops/rosterd/core/metrics"
)

func TestPromSink_RecordComputation(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	ev := coremetrics.ComputationEvent{
		ComputationID:  "run-1",
		Candidates:     42,
		Divisions:      2,
		Teams:          4,
		ScoreSpread:    map[string]float64{"upper": 1.5},
		DivisionSwaps:  1,
		GenderSwaps:    2,
		NewPlayerSwaps: 0,
		ScoreSwaps:     3,
		Duration:       20 * time.Millisecond,
		Time:           time.Now(),
	}
	if err := sink.RecordComputation(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP balance_candidates Number of candidates in the latest computation
# TYPE balance_candidates gauge
balance_candidates 42
`
	if err := testutil.CollectAndCompare(sink.candidates, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected candidates metric: %v", err)
	}

	expectedSwaps := `
# HELP balance_swaps_total Local-search swaps performed, by pass
# TYPE balance_swaps_total counter
balance_swaps_total{pass="division"} 1
balance_swaps_total{pass="gender"} 2
balance_swaps_total{pass="new_player"} 0
balance_swaps_total{pass="score"} 3
`
	if err := testutil.CollectAndCompare(sink.swaps, strings.NewReader(expectedSwaps)); err != nil {
		t.Errorf("unexpected swap metrics: %v", err)
	}

	if c := testutil.CollectAndCount(sink.spread); c == 0 {
		t.Errorf("score spread not recorded")
	}
}

func TestPromSink_RecordMove(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordMove(coremetrics.MoveEvent{PlayerID: "p1", Accepted: true}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if err := sink.RecordMove(coremetrics.MoveEvent{PlayerID: "p2", Reason: "captain locked"}); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP balance_moves_total Total number of manual move requests
# TYPE balance_moves_total counter
balance_moves_total{accepted="false"} 1
balance_moves_total{accepted="true"} 1
`
	if err := testutil.CollectAndCompare(sink.moves, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected move metrics: %v", err)
	}
}

func TestPromSink_RegisterTwiceOnSameRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("second registration must reuse collectors: %v", err)
	}
	if err := sink.RecordComputation(coremetrics.ComputationEvent{Candidates: 1}); err != nil {
		t.Fatalf("record error: %v", err)
	}
}
