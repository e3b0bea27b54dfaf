package balance

import (
	"time"

	"github.com/google/uuid"

	"github.com/leagueops/rosterd/core/logger"
	coremetrics "github.com/leagueops/rosterd/core/metrics"
	"github.com/leagueops/rosterd/core/model"
)

// DivisionRoster is the final state of one division after a computation:
// its candidates in global order and the formed teams.
type DivisionRoster struct {
	Division model.Division
	CatchAll bool
	// Candidates holds the division's players in global placement order.
	// The manual move operator mutates this list directly.
	Candidates []model.Candidate
	Teams      []TeamBucket
}

// Result is the output of one balancing run. Assignments are deterministic
// for identical inputs; ComputationID is per-run metadata.
type Result struct {
	ComputationID string
	Divisions     []DivisionRoster
	Assignments   []model.Assignment
	Stats         Stats
}

// Stats aggregates the local-search work across all passes of a run.
type Stats struct {
	DivisionSwaps  int
	GenderSwaps    int
	NewPlayerSwaps int
	ScoreSwaps     int
}

// Empty reports whether the run produced no assignments.
func (r *Result) Empty() bool { return len(r.Assignments) == 0 }

// Engine runs roster balancing computations. It performs no I/O and holds
// no state between runs; the caller serializes concurrent manual moves.
type Engine struct {
	cfg  Config
	log  logger.Logger
	sink coremetrics.Sink
}

// NewEngine builds an engine. A nil sink disables metrics, a nil logger
// discards logs.
func NewEngine(cfg Config, log logger.Logger, sink coremetrics.Sink) *Engine {
	cfg.SetDefaults()
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{cfg: cfg, log: log, sink: sink}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// Compute splits the candidate pool into divisions and teams. An empty pool
// or a zero total team count yields an empty result, not an error; the
// caller surfaces that as "nothing to place".
func (e *Engine) Compute(candidates []model.Candidate, divisions []model.Division) *Result {
	start := time.Now()
	res := &Result{ComputationID: uuid.NewString()}

	divs := append([]model.Division(nil), divisions...)
	model.SortDivisions(divs)
	if len(candidates) == 0 || model.TotalTeams(divs) == 0 {
		e.log.Warnf("computation %s: nothing to place", res.ComputationID)
		return res
	}

	buckets, divSwaps := AssignDivisions(divs, candidates, e.cfg, e.log)
	res.Stats.DivisionSwaps = divSwaps

	res.Divisions = make([]DivisionRoster, len(buckets))
	for i := range buckets {
		cs := buckets[i].Candidates()
		sortCandidates(cs)
		res.Divisions[i] = DivisionRoster{
			Division:   buckets[i].Division,
			CatchAll:   buckets[i].CatchAll,
			Candidates: cs,
		}
	}
	e.formAll(res, allIndexes(len(res.Divisions)))
	e.record(res, time.Since(start))
	return res
}

// Move applies a single manual move and reforms the teams of the two
// affected divisions. A rejected move leaves the result untouched.
func (e *Engine) Move(res *Result, divisionIndex int, playerID string, direction MoveDirection) error {
	src, dst, err := Move(res.Divisions, divisionIndex, playerID, direction)
	ev := coremetrics.MoveEvent{PlayerID: playerID, Time: time.Now()}
	if divisionIndex >= 0 && divisionIndex < len(res.Divisions) {
		ev.FromDivisionID = res.Divisions[divisionIndex].Division.ID
	}
	if err != nil {
		ev.Reason = err.Error()
		e.recordMove(ev)
		return err
	}
	ev.Accepted = true
	ev.ToDivisionID = res.Divisions[dst].Division.ID
	e.recordMove(ev)

	e.formAll(res, []int{src, dst})
	return nil
}

// formAll (re)runs team formation for the given division indexes and
// rebuilds the flat assignment list.
func (e *Engine) formAll(res *Result, indexes []int) {
	for _, i := range indexes {
		d := &res.Divisions[i]
		teams, stats := FormTeams(d.Division, d.Candidates, d.CatchAll, e.cfg, e.log)
		d.Teams = teams
		res.Stats.GenderSwaps += stats.GenderSwaps
		res.Stats.NewPlayerSwaps += stats.NewPlayerSwaps
		res.Stats.ScoreSwaps += stats.ScoreSwaps
	}

	res.Assignments = res.Assignments[:0]
	for _, d := range res.Divisions {
		for _, t := range d.Teams {
			for _, p := range t.Players {
				res.Assignments = append(res.Assignments, model.Assignment{
					PlayerID:   p.ID,
					DivisionID: d.Division.ID,
					TeamNumber: t.Index + 1,
					IsCaptain:  p.IsCaptain,
				})
			}
		}
	}
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func (e *Engine) record(res *Result, elapsed time.Duration) {
	ev := coremetrics.ComputationEvent{
		ComputationID:  res.ComputationID,
		Candidates:     0,
		Divisions:      len(res.Divisions),
		ScoreSpread:    make(map[string]float64, len(res.Divisions)),
		DivisionSwaps:  res.Stats.DivisionSwaps,
		GenderSwaps:    res.Stats.GenderSwaps,
		NewPlayerSwaps: res.Stats.NewPlayerSwaps,
		ScoreSwaps:     res.Stats.ScoreSwaps,
		Duration:       elapsed,
		Time:           time.Now(),
	}
	for _, d := range res.Divisions {
		ev.Candidates += len(d.Candidates)
		ev.Teams += len(d.Teams)
		ev.ScoreSpread[d.Division.ID] = scoreSpread(d.Teams)
	}
	if err := e.sink.RecordComputation(ev); err != nil {
		e.log.Errorf("record computation: %v", err)
	}
}

func (e *Engine) recordMove(ev coremetrics.MoveEvent) {
	if rec, ok := e.sink.(coremetrics.MoveRecorder); ok {
		if err := rec.RecordMove(ev); err != nil {
			e.log.Errorf("record move: %v", err)
		}
	}
}

func scoreSpread(teams []TeamBucket) float64 {
	if len(teams) == 0 {
		return 0
	}
	minSum := teams[0].ScoreSum()
	maxSum := minSum
	for i := 1; i < len(teams); i++ {
		s := teams[i].ScoreSum()
		if s < minSum {
			minSum = s
		}
		if s > maxSum {
			maxSum = s
		}
	}
	return maxSum - minSum
}
