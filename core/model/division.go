package model

import (
	"fmt"
	"sort"
)

// Division is one skill division of the league. Divisions are totally
// ordered by Rank from strongest to weakest; the weakest division acts as
// the catch-all overflow destination during placement.
type Division struct {
	ID          string
	DisplayName string
	Rank        int // lower rank sorts first (stronger division)
	TeamCount   int
}

// Validate checks that the division record is usable by the engine.
func (d Division) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("division id is required")
	}
	if d.TeamCount <= 0 {
		return fmt.Errorf("division %s needs a positive team count", d.ID)
	}
	return nil
}

// SortDivisions orders divisions strongest first. Rank ties fall back to the
// id so the order stays deterministic.
func SortDivisions(divs []Division) {
	sort.Slice(divs, func(i, j int) bool {
		if divs[i].Rank != divs[j].Rank {
			return divs[i].Rank < divs[j].Rank
		}
		return divs[i].ID < divs[j].ID
	})
}

// TotalTeams sums the team counts of all divisions.
func TotalTeams(divs []Division) int {
	total := 0
	for _, d := range divs {
		total += d.TeamCount
	}
	return total
}
