package balance

import (
	"math"

	"github.com/leagueops/rosterd/core/model"
)

// Targets holds the per-division size and gender targets, indexed in
// division rank order (strongest first).
type Targets struct {
	Size    []int
	Male    []int
	NonMale []int
}

// DivisionTargets computes size and gender targets for each division.
// Sizes follow team counts: every team gets floor(players/teams) and the
// remainder is apportioned across divisions weighted by team count. The
// non-male targets follow the pool-wide non-male ratio, with any shortfall
// distributed by repeated left-to-right passes capped at each division's
// size target.
func DivisionTargets(divs []model.Division, candidates []model.Candidate) Targets {
	n := len(divs)
	t := Targets{Size: make([]int, n), Male: make([]int, n), NonMale: make([]int, n)}
	totalTeams := model.TotalTeams(divs)
	totalPlayers := len(candidates)
	if totalTeams <= 0 || totalPlayers == 0 {
		return t
	}

	base := totalPlayers / totalTeams
	teamCounts := make([]int, n)
	for i, d := range divs {
		teamCounts[i] = d.TeamCount
		t.Size[i] = base * d.TeamCount
	}
	extra := Apportion(totalPlayers%totalTeams, teamCounts, teamCounts)
	for i := range t.Size {
		t.Size[i] += extra[i]
	}

	totalNonMale := 0
	for _, c := range candidates {
		if !c.Gender.Male() {
			totalNonMale++
		}
	}
	ratio := float64(totalNonMale) / float64(totalPlayers)
	assigned := 0
	for i := range t.NonMale {
		nm := int(math.Floor(float64(t.Size[i]) * ratio))
		if nm > t.Size[i] {
			nm = t.Size[i]
		}
		t.NonMale[i] = nm
		assigned += nm
	}

	// Left-to-right passes hand out the rounding shortfall one slot at a
	// time until the pool total is covered or no division has room.
	shortfall := totalNonMale - assigned
	for shortfall > 0 {
		progressed := false
		for i := range t.NonMale {
			if shortfall == 0 {
				break
			}
			if t.NonMale[i] < t.Size[i] {
				t.NonMale[i]++
				shortfall--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	for i := range t.Male {
		t.Male[i] = t.Size[i] - t.NonMale[i]
	}
	return t
}
