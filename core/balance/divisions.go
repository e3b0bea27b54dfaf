package balance

import (
	"github.com/leagueops/rosterd/core/logger"
	"github.com/leagueops/rosterd/core/model"
)

// DivisionBucket is a division together with the units currently assigned
// to it and its placement targets. Aggregates are derived from the unit
// list so they can never drift from the actual contents.
type DivisionBucket struct {
	Division model.Division
	// CatchAll marks the weakest division, the overflow destination with
	// no gender ceiling.
	CatchAll bool
	Units    []Unit

	TargetSize    int
	TargetMale    int
	TargetNonMale int
}

// Size returns the number of players currently in the bucket.
func (b *DivisionBucket) Size() int {
	n := 0
	for _, u := range b.Units {
		n += u.Size()
	}
	return n
}

// MaleCount returns the number of male players in the bucket.
func (b *DivisionBucket) MaleCount() int {
	n := 0
	for _, u := range b.Units {
		n += u.MaleCount()
	}
	return n
}

// NonMaleCount returns the number of non-male players in the bucket.
func (b *DivisionBucket) NonMaleCount() int {
	n := 0
	for _, u := range b.Units {
		n += u.NonMaleCount()
	}
	return n
}

// Candidates flattens the bucket's units into a candidate list in unit
// order.
func (b *DivisionBucket) Candidates() []model.Candidate {
	cs := make([]model.Candidate, 0, b.Size())
	for _, u := range b.Units {
		cs = append(cs, u.Members...)
	}
	return cs
}

// fitsStrict reports whether adding the unit keeps size and both gender
// counts within the bucket's targets.
func (b *DivisionBucket) fitsStrict(u Unit) bool {
	return b.fitsSize(u) &&
		b.MaleCount()+u.MaleCount() <= b.TargetMale &&
		b.NonMaleCount()+u.NonMaleCount() <= b.TargetNonMale
}

// fitsSize reports whether adding the unit keeps the bucket within its size
// target, ignoring gender.
func (b *DivisionBucket) fitsSize(u Unit) bool {
	return b.Size()+u.Size() <= b.TargetSize
}

func (b *DivisionBucket) remove(idx int) Unit {
	u := b.Units[idx]
	b.Units = append(b.Units[:idx], b.Units[idx+1:]...)
	return u
}

// AssignDivisions places every unit into a division bucket. Locked units go
// to their captain's division unconditionally; the rest are placed by the
// strict fit / relaxed fit / spare capacity / catch-all chain, followed by a
// redistribution pull and bounded adjacent-pair gender rebalancing. The
// assignment cannot fail: in the worst case everything lands in the
// catch-all division. Returns the buckets and the number of rebalancing
// swaps performed.
func AssignDivisions(divs []model.Division, candidates []model.Candidate, cfg Config, log logger.Logger) ([]DivisionBucket, int) {
	targets := DivisionTargets(divs, candidates)
	buckets := make([]DivisionBucket, len(divs))
	for i, d := range divs {
		buckets[i] = DivisionBucket{
			Division:      d,
			CatchAll:      i == len(divs)-1,
			TargetSize:    targets.Size[i],
			TargetMale:    targets.Male[i],
			TargetNonMale: targets.NonMale[i],
		}
	}
	if len(buckets) == 0 {
		return buckets, 0
	}

	units := BuildUnits(candidates)
	var unlocked []Unit
	for _, u := range units {
		if u.LockedDivisionID == "" {
			unlocked = append(unlocked, u)
			continue
		}
		placed := false
		for i := range buckets {
			if buckets[i].Division.ID == u.LockedDivisionID {
				buckets[i].Units = append(buckets[i].Units, u)
				placed = true
				break
			}
		}
		if !placed {
			// Lock points at a division not in this run; treat as
			// unlocked rather than dropping the players.
			log.Warnf("unit %s locked to unknown division %s", u.ID, u.LockedDivisionID)
			unlocked = append(unlocked, u)
		}
	}

	for _, u := range unlocked {
		placeUnit(buckets, u)
	}

	redistribute(buckets)
	swaps := rebalanceDivisions(buckets, cfg.DivisionPasses, log)
	return buckets, swaps
}

// placeUnit walks the fallback chain for one unlocked unit.
func placeUnit(buckets []DivisionBucket, u Unit) {
	last := len(buckets) - 1

	// Scanning starts at the first non-catch-all division still under its
	// size target.
	start := 0
	for start < last && buckets[start].Size() >= buckets[start].TargetSize {
		start++
	}

	for i := start; i < last; i++ {
		if buckets[i].fitsStrict(u) {
			buckets[i].Units = append(buckets[i].Units, u)
			return
		}
	}
	for i := start; i < last; i++ {
		if buckets[i].fitsSize(u) {
			buckets[i].Units = append(buckets[i].Units, u)
			return
		}
	}
	for i := range buckets {
		if buckets[i].fitsSize(u) {
			buckets[i].Units = append(buckets[i].Units, u)
			return
		}
	}
	// Guaranteed destination: targets sum to the pool size, so overflow is
	// accepted here rather than treated as an error.
	buckets[last].Units = append(buckets[last].Units, u)
}

// redistribute pulls strict-fitting unlocked units out of the catch-all
// division into earlier divisions still below their size target.
func redistribute(buckets []DivisionBucket) {
	last := len(buckets) - 1
	if last <= 0 {
		return
	}
	catchAll := &buckets[last]
	for i := 0; i < last; i++ {
		for buckets[i].Size() < buckets[i].TargetSize {
			moved := false
			for j, u := range catchAll.Units {
				if u.LockedDivisionID != "" {
					continue
				}
				if buckets[i].fitsStrict(u) {
					buckets[i].Units = append(buckets[i].Units, catchAll.remove(j))
					moved = true
					break
				}
			}
			if !moved {
				break
			}
		}
	}
}

// rebalanceDivisions runs up to maxPasses passes over adjacent division
// pairs, swapping single unlocked players to move both divisions toward
// their gender targets. A pass with no swap ends the search early.
func rebalanceDivisions(buckets []DivisionBucket, maxPasses int, log logger.Logger) int {
	swaps := 0
	for pass := 0; pass < maxPasses; pass++ {
		swapped := false
		for i := 0; i+1 < len(buckets); i++ {
			if swapAdjacent(&buckets[i], &buckets[i+1], true) {
				swapped = true
				swaps++
			}
			if swapAdjacent(&buckets[i], &buckets[i+1], false) {
				swapped = true
				swaps++
			}
		}
		if !swapped {
			break
		}
	}
	if swaps > 0 {
		log.Debugf("division rebalancing made %d swaps", swaps)
	}
	return swaps
}

// swapAdjacent trades one single-player unit between two adjacent divisions
// when the upper division has a surplus of the given gender and the lower a
// deficit. The surplus side gives up its weakest (highest score) matching
// player, the deficit side its strongest.
func swapAdjacent(upper, lower *DivisionBucket, male bool) bool {
	var upperOver, lowerUnder bool
	if male {
		upperOver = upper.MaleCount() > upper.TargetMale
		lowerUnder = lower.MaleCount() < lower.TargetMale
	} else {
		upperOver = upper.NonMaleCount() > upper.TargetNonMale
		lowerUnder = lower.NonMaleCount() < lower.TargetNonMale
	}
	if !upperOver || !lowerUnder {
		return false
	}

	give := matchIndex(upper.Units, male, true)
	take := matchIndex(lower.Units, !male, false)
	if give < 0 || take < 0 {
		return false
	}

	gu := upper.remove(give)
	tu := lower.remove(take)
	upper.Units = append(upper.Units, tu)
	lower.Units = append(lower.Units, gu)
	return true
}

// matchIndex finds a swappable single-player unit of the wanted gender.
// highest selects the highest-score match, otherwise the lowest.
func matchIndex(units []Unit, male, highest bool) int {
	best := -1
	var bestScore float64
	for i, u := range units {
		if u.Size() != 1 || u.LockedDivisionID != "" {
			continue
		}
		if u.Members[0].Gender.Male() != male {
			continue
		}
		s := u.AverageScore()
		if best == -1 || (highest && s > bestScore) || (!highest && s < bestScore) {
			best = i
			bestScore = s
		}
	}
	return best
}
