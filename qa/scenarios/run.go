package scenarios

import (
	"fmt"

	"github.com/leagueops/rosterd/core/balance"
	"github.com/leagueops/rosterd/core/model"
	"github.com/leagueops/rosterd/internal/rosterfile"
)

// Run computes the scenario and verifies the engine invariants plus the
// scenario's own expectations. The first violation is returned as an error.
func Run(sc *Scenario) (*balance.Result, error) {
	roster := rosterfile.Roster{Candidates: sc.Candidates, Divisions: sc.Divisions}
	candidates, divisions, err := roster.Models()
	if err != nil {
		return nil, err
	}

	engine := balance.NewEngine(balance.Config{}, nil, nil)
	res := engine.Compute(candidates, divisions)

	if err := checkInvariants(res, candidates); err != nil {
		return res, err
	}
	if err := checkExpectations(sc, res, divisions, candidates); err != nil {
		return res, err
	}
	return res, nil
}

// checkInvariants enforces the properties that hold for every run:
// completeness, captain placement and size conservation.
func checkInvariants(res *balance.Result, candidates []model.Candidate) error {
	seen := make(map[string]int, len(candidates))
	for _, a := range res.Assignments {
		seen[a.PlayerID]++
	}
	for _, c := range candidates {
		if seen[c.ID] != 1 {
			return fmt.Errorf("candidate %s appears %d times in output", c.ID, seen[c.ID])
		}
	}
	if len(res.Assignments) != len(candidates) {
		return fmt.Errorf("got %d assignments for %d candidates", len(res.Assignments), len(candidates))
	}

	byID := make(map[string]model.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}
	for _, a := range res.Assignments {
		c := byID[a.PlayerID]
		if c.IsCaptain && a.DivisionID != c.CaptainDivisionID {
			return fmt.Errorf("captain %s placed in %s, locked to %s", c.ID, a.DivisionID, c.CaptainDivisionID)
		}
		if c.IsCaptain != a.IsCaptain {
			return fmt.Errorf("captain flag mismatch for %s", c.ID)
		}
	}

	total := 0
	for _, d := range res.Divisions {
		divTotal := 0
		for _, t := range d.Teams {
			divTotal += t.Size()
		}
		if divTotal != len(d.Candidates) {
			return fmt.Errorf("division %s team sizes sum to %d, roster has %d", d.Division.ID, divTotal, len(d.Candidates))
		}
		total += divTotal
	}
	if total != len(candidates) {
		return fmt.Errorf("division sizes sum to %d, pool has %d", total, len(candidates))
	}
	return nil
}

func checkExpectations(sc *Scenario, res *balance.Result, divisions []model.Division, candidates []model.Candidate) error {
	exp := sc.Expected
	if len(exp.DivisionSizes) > 0 {
		for i, want := range exp.DivisionSizes {
			if i >= len(res.Divisions) {
				return fmt.Errorf("expected %d divisions, got %d", len(exp.DivisionSizes), len(res.Divisions))
			}
			if got := len(res.Divisions[i].Candidates); got != want {
				return fmt.Errorf("division %d size %d, want %d", i, got, want)
			}
		}
	}

	if len(exp.NonMaleTargets) > 0 || len(exp.MaleTargets) > 0 {
		ordered := append([]model.Division(nil), divisions...)
		model.SortDivisions(ordered)
		targets := balance.DivisionTargets(ordered, candidates)
		for i, want := range exp.NonMaleTargets {
			if targets.NonMale[i] != want {
				return fmt.Errorf("division %d non-male target %d, want %d", i, targets.NonMale[i], want)
			}
		}
		for i, want := range exp.MaleTargets {
			if targets.Male[i] != want {
				return fmt.Errorf("division %d male target %d, want %d", i, targets.Male[i], want)
			}
		}
	}

	place := make(map[string]struct {
		division string
		team     int
	}, len(res.Assignments))
	for _, a := range res.Assignments {
		place[a.PlayerID] = struct {
			division string
			team     int
		}{a.DivisionID, a.TeamNumber}
	}
	for _, group := range exp.SameTeam {
		for _, id := range group[1:] {
			if place[id] != place[group[0]] {
				return fmt.Errorf("players %s and %s ended up on different teams", group[0], id)
			}
		}
	}
	for id, div := range exp.PlayerDivisions {
		if place[id].division != div {
			return fmt.Errorf("player %s placed in %s, want %s", id, place[id].division, div)
		}
	}
	return nil
}
