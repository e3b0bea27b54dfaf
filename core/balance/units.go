package balance

import (
	"sort"
	"strings"

	"github.com/leagueops/rosterd/core/model"
)

// Unit is an atomic placement unit: a single candidate, or a mutual pair
// that must land on the same division and team. Units are immutable value
// records rebuilt for every computation.
type Unit struct {
	// ID is the sorted, colon-joined member ids. Stable across runs.
	ID string
	// Members holds one or two candidates in global placement order.
	Members []model.Candidate
	// LockedDivisionID is set when any member is a captain locked to a
	// division. Locked units never move during placement.
	LockedDivisionID string
}

func newUnit(members ...model.Candidate) Unit {
	sort.Slice(members, func(i, j int) bool { return CandidateLess(members[i], members[j]) })
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	sort.Strings(ids)
	locked := ""
	for _, m := range members {
		if m.IsCaptain && m.CaptainDivisionID != "" {
			locked = m.CaptainDivisionID
			break
		}
	}
	return Unit{ID: strings.Join(ids, ":"), Members: members, LockedDivisionID: locked}
}

// Size returns the number of members.
func (u Unit) Size() int { return len(u.Members) }

// AverageScore returns the mean placement score of the members.
func (u Unit) AverageScore() float64 {
	if len(u.Members) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range u.Members {
		sum += m.PlacementScore
	}
	return sum / float64(len(u.Members))
}

// MaleCount returns the number of members counting toward the male quota.
func (u Unit) MaleCount() int {
	n := 0
	for _, m := range u.Members {
		if m.Gender.Male() {
			n++
		}
	}
	return n
}

// NonMaleCount returns the number of members counting toward the non-male
// quota. Unknown genders land here.
func (u Unit) NonMaleCount() int { return u.Size() - u.MaleCount() }

// Contains reports whether the unit holds the given player.
func (u Unit) Contains(playerID string) bool {
	for _, m := range u.Members {
		if m.ID == playerID {
			return true
		}
	}
	return false
}

// BuildUnits groups candidates into placement units. A two-person unit is
// formed only when both candidates name each other as pair partner and
// neither is a captain locked to a different division than the other.
// Output is sorted by (average score ascending, unit id ascending).
func BuildUnits(candidates []model.Candidate) []Unit {
	ordered := append([]model.Candidate(nil), candidates...)
	sortCandidates(ordered)

	byID := make(map[string]model.Candidate, len(ordered))
	for _, c := range ordered {
		byID[c.ID] = c
	}

	visited := make(map[string]bool, len(ordered))
	units := make([]Unit, 0, len(ordered))
	for _, c := range ordered {
		if visited[c.ID] {
			continue
		}
		visited[c.ID] = true

		if c.PairUserID != "" && c.PairUserID != c.ID {
			partner, ok := byID[c.PairUserID]
			if ok && !visited[partner.ID] && partner.PairUserID == c.ID && locksCompatible(c, partner) {
				visited[partner.ID] = true
				units = append(units, newUnit(c, partner))
				continue
			}
		}
		units = append(units, newUnit(c))
	}

	sort.Slice(units, func(i, j int) bool {
		si, sj := units[i].AverageScore(), units[j].AverageScore()
		if si != sj {
			return si < sj
		}
		return units[i].ID < units[j].ID
	})
	return units
}

// locksCompatible reports whether two candidates may share a unit. Only two
// captains locked to different divisions are incompatible.
func locksCompatible(a, b model.Candidate) bool {
	if a.IsCaptain && b.IsCaptain && a.CaptainDivisionID != b.CaptainDivisionID {
		return false
	}
	return true
}
