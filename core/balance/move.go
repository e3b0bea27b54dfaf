package balance

import (
	"fmt"
	"math"

	"github.com/leagueops/rosterd/core/model"
)

// MoveDirection is the offset to an adjacent division: -1 moves the player
// up (stronger), +1 moves the player down (weaker).
type MoveDirection int

const (
	MoveUp   MoveDirection = -1
	MoveDown MoveDirection = 1
)

// Move relocates a player (and a mutual pair partner, if any) from the
// division at divisionIndex to the adjacent one in the given direction,
// pulling back an equal-size set of closest-score replacements of identical
// gender so both division sizes are preserved exactly. On failure the
// rosters are untouched and a MoveError carries the user-facing reason.
// Returns the two affected division indexes; team formation must be redone
// for both.
func Move(rosters []DivisionRoster, divisionIndex int, playerID string, direction MoveDirection) (int, int, error) {
	if divisionIndex < 0 || divisionIndex >= len(rosters) {
		return 0, 0, &MoveError{Cause: ErrMoveOutOfRange, Reason: fmt.Sprintf("division %d does not exist", divisionIndex)}
	}
	target := divisionIndex + int(direction)
	if target < 0 || target >= len(rosters) {
		return 0, 0, &MoveError{Cause: ErrMoveOutOfRange, Reason: fmt.Sprintf("no division %s of %s", directionWord(direction), rosters[divisionIndex].Division.DisplayName)}
	}

	src := &rosters[divisionIndex]
	dst := &rosters[target]

	var moving *Unit
	for _, u := range BuildUnits(src.Candidates) {
		if u.Contains(playerID) {
			v := u
			moving = &v
			break
		}
	}
	if moving == nil {
		return 0, 0, &MoveError{Cause: ErrMovePlayerUnknown, Reason: fmt.Sprintf("player %s is not in %s", playerID, src.Division.DisplayName)}
	}
	if moving.LockedDivisionID != "" || hasCaptain(*moving) {
		return 0, 0, &MoveError{Cause: ErrMoveCaptainLocked, Reason: "captains and their partners are locked to their division"}
	}

	replacements, err := findReplacements(dst, *moving)
	if err != nil {
		return 0, 0, err
	}

	src.Candidates = swapMembers(src.Candidates, moving.Members, replacements)
	dst.Candidates = swapMembers(dst.Candidates, replacements, moving.Members)
	return divisionIndex, target, nil
}

func directionWord(d MoveDirection) string {
	if d < 0 {
		return "stronger"
	}
	return "weaker"
}

func hasCaptain(u Unit) bool {
	for _, m := range u.Members {
		if m.IsCaptain {
			return true
		}
	}
	return false
}

// findReplacements picks, for each moving member, the target-division player
// of identical gender with the closest score. Replacements must be
// non-captain and outside any mutual pair; ties fall back to the global
// placement order.
func findReplacements(dst *DivisionRoster, moving Unit) ([]model.Candidate, error) {
	inPair := make(map[string]bool)
	for _, u := range BuildUnits(dst.Candidates) {
		if u.Size() == 2 {
			for _, m := range u.Members {
				inPair[m.ID] = true
			}
		}
	}

	taken := make(map[string]bool, moving.Size())
	replacements := make([]model.Candidate, 0, moving.Size())
	for _, m := range moving.Members {
		best := -1
		bestDiff := math.Inf(1)
		for i, c := range dst.Candidates {
			if c.IsCaptain || inPair[c.ID] || taken[c.ID] {
				continue
			}
			if c.Gender.Male() != m.Gender.Male() {
				continue
			}
			diff := math.Abs(c.PlacementScore - m.PlacementScore)
			if diff < bestDiff || (diff == bestDiff && best >= 0 && CandidateLess(c, dst.Candidates[best])) {
				best = i
				bestDiff = diff
			}
		}
		if best == -1 {
			return nil, &MoveError{Cause: ErrMoveNoReplacement, Reason: fmt.Sprintf("no eligible replacement for %s in %s", m.DisplayName, dst.Division.DisplayName)}
		}
		taken[dst.Candidates[best].ID] = true
		replacements = append(replacements, dst.Candidates[best])
	}
	return replacements, nil
}

// swapMembers returns the list with out removed and in appended, restored to
// the global placement order.
func swapMembers(list, out, in []model.Candidate) []model.Candidate {
	drop := make(map[string]bool, len(out))
	for _, c := range out {
		drop[c.ID] = true
	}
	next := make([]model.Candidate, 0, len(list)-len(out)+len(in))
	for _, c := range list {
		if !drop[c.ID] {
			next = append(next, c)
		}
	}
	next = append(next, in...)
	sortCandidates(next)
	return next
}
