package balance

import (
	"sort"

	"github.com/leagueops/rosterd/core/model"
)

// CandidateLess is the single global placement order: score ascending (lower
// is stronger), then display name, then id. Every component sorts with this
// comparator so that identical inputs always produce identical output.
func CandidateLess(a, b model.Candidate) bool {
	if a.PlacementScore != b.PlacementScore {
		return a.PlacementScore < b.PlacementScore
	}
	if a.DisplayName != b.DisplayName {
		return a.DisplayName < b.DisplayName
	}
	return a.ID < b.ID
}

func sortCandidates(cs []model.Candidate) {
	sort.Slice(cs, func(i, j int) bool { return CandidateLess(cs[i], cs[j]) })
}
