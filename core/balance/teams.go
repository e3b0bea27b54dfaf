package balance

import (
	"math"
	"sort"

	"github.com/leagueops/rosterd/core/logger"
	"github.com/leagueops/rosterd/core/model"
)

// TeamBucket is one team inside a division during formation.
type TeamBucket struct {
	Index    int
	Capacity int
	// NonMaleQuota and NewQuota are the per-team shares of the division's
	// non-male and new-player counts.
	NonMaleQuota int
	NewQuota     int
	Players      []model.Candidate
}

// Size returns the current number of players on the team.
func (t *TeamBucket) Size() int { return len(t.Players) }

// ScoreSum returns the running sum of placement scores.
func (t *TeamBucket) ScoreSum() float64 {
	sum := 0.0
	for _, p := range t.Players {
		sum += p.PlacementScore
	}
	return sum
}

// MaleCount returns the number of male players on the team.
func (t *TeamBucket) MaleCount() int {
	n := 0
	for _, p := range t.Players {
		if p.Gender.Male() {
			n++
		}
	}
	return n
}

// NonMaleCount returns the number of non-male players on the team.
func (t *TeamBucket) NonMaleCount() int { return t.Size() - t.MaleCount() }

// NewCount returns the number of first-season players on the team.
func (t *TeamBucket) NewCount() int {
	n := 0
	for _, p := range t.Players {
		if p.IsNew {
			n++
		}
	}
	return n
}

func (t *TeamBucket) hasRoom(size int) bool { return t.Size()+size <= t.Capacity }

// TeamStats counts the local-search work done while forming one division's
// teams, for observability.
type TeamStats struct {
	GenderSwaps    int
	NewPlayerSwaps int
	ScoreSwaps     int
}

// FormTeams splits one division's candidates into teams. Captains seed the
// teams in strength order and lock their mutual partners alongside them; the
// remaining units are placed greedily along a snake order with a
// multi-criteria cost, then three bounded swap passes trade players to meet
// gender quotas, spread new players, and flatten the score spread. catchAll
// disables gender quotas for the division.
func FormTeams(div model.Division, candidates []model.Candidate, catchAll bool, cfg Config, log logger.Logger) ([]TeamBucket, TeamStats) {
	var stats TeamStats
	tc := div.TeamCount
	if tc <= 0 || len(candidates) == 0 {
		return nil, stats
	}

	n := len(candidates)
	base, rem := n/tc, n%tc
	teams := make([]TeamBucket, tc)
	caps := make([]int, tc)
	totalNonMale, totalNew := 0, 0
	for _, c := range candidates {
		if !c.Gender.Male() {
			totalNonMale++
		}
		if c.IsNew {
			totalNew++
		}
	}
	for i := range teams {
		capacity := base
		if i < rem {
			capacity++
		}
		teams[i] = TeamBucket{Index: i, Capacity: capacity}
		caps[i] = capacity
	}
	ones := make([]int, tc)
	for i := range ones {
		ones[i] = 1
	}
	nmQuotas := Apportion(totalNonMale, caps, ones)
	newQuotas := Apportion(totalNew, caps, ones)
	for i := range teams {
		teams[i].NonMaleQuota = nmQuotas[i]
		teams[i].NewQuota = newQuotas[i]
	}

	locked := seedCaptains(teams, candidates, log)

	assigned := make(map[string]bool, len(locked))
	for id := range locked {
		assigned[id] = true
	}
	var remaining []model.Candidate
	for _, c := range candidates {
		if !assigned[c.ID] {
			remaining = append(remaining, c)
		}
	}
	units := BuildUnits(remaining)

	paired := make(map[string]bool)
	for _, u := range units {
		if u.Size() == 2 {
			for _, m := range u.Members {
				paired[m.ID] = true
			}
		}
	}

	order := snakeOrder(tc, len(units))
	for k, u := range units {
		placeTeamUnit(teams, u, order[k], catchAll)
	}

	swappable := func(p model.Candidate) bool {
		return !p.IsCaptain && !locked[p.ID] && !paired[p.ID]
	}
	for i := 0; i < cfg.GenderSwaps; i++ {
		if !swapForGender(teams, swappable, catchAll) {
			break
		}
		stats.GenderSwaps++
	}
	for i := 0; i < cfg.NewPlayerSwaps; i++ {
		if !swapForNewPlayers(teams, swappable) {
			break
		}
		stats.NewPlayerSwaps++
	}
	for i := 0; i < cfg.ScoreSwaps; i++ {
		if !swapForScoreSpread(teams, swappable) {
			break
		}
		stats.ScoreSwaps++
	}

	for i := range teams {
		orderTeam(&teams[i])
	}
	log.Debugw("teams formed", map[string]any{
		"division": div.ID,
		"teams":    tc,
		"players":  n,
		"gender":   stats.GenderSwaps,
		"new":      stats.NewPlayerSwaps,
		"score":    stats.ScoreSwaps,
	})
	return teams, stats
}

// seedCaptains places captains into teams by strength rank and pulls each
// captain's mutual partner onto the same team. Returns the set of player
// ids locked by seeding.
func seedCaptains(teams []TeamBucket, candidates []model.Candidate, log logger.Logger) map[string]bool {
	locked := make(map[string]bool)
	byID := make(map[string]model.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}
	var captains []model.Candidate
	for _, c := range candidates {
		if c.IsCaptain {
			captains = append(captains, c)
		}
	}
	sortCandidates(captains)

	for rank, c := range captains {
		ti := rank
		if ti >= len(teams) {
			log.Warnf("captain %s exceeds team count, seeding last team", c.ID)
			ti = len(teams) - 1
		}
		teams[ti].Players = append(teams[ti].Players, c)
		locked[c.ID] = true

		if c.PairUserID == "" {
			continue
		}
		p, ok := byID[c.PairUserID]
		if !ok || p.PairUserID != c.ID || p.IsCaptain || locked[p.ID] {
			continue
		}
		teams[ti].Players = append(teams[ti].Players, p)
		locked[p.ID] = true
	}
	return locked
}

// snakeOrder returns a visiting order over team indexes of the given
// length: ascending, then descending, alternating.
func snakeOrder(teamCount, length int) []int {
	order := make([]int, 0, length)
	desc := false
	for len(order) < length {
		if desc {
			for i := teamCount - 1; i >= 0 && len(order) < length; i-- {
				order = append(order, i)
			}
		} else {
			for i := 0; i < teamCount && len(order) < length; i++ {
				order = append(order, i)
			}
		}
		desc = !desc
	}
	return order
}

// placementCost is the lexicographic cost of placing a unit on a team.
// Lower wins; ties keep the earlier evaluated team, so the preferred snake
// team wins equal costs.
type placementCost struct {
	constraint int
	gender     int
	newPlayers int
	spread     float64
	size       int
}

func (c placementCost) less(o placementCost) bool {
	if c.constraint != o.constraint {
		return c.constraint < o.constraint
	}
	if c.gender != o.gender {
		return c.gender < o.gender
	}
	if c.newPlayers != o.newPlayers {
		return c.newPlayers < o.newPlayers
	}
	if c.spread != o.spread {
		return c.spread < o.spread
	}
	return c.size < o.size
}

func placeTeamUnit(teams []TeamBucket, u Unit, preferred int, catchAll bool) {
	order := make([]int, 0, len(teams))
	order = append(order, preferred)
	for i := range teams {
		if i != preferred {
			order = append(order, i)
		}
	}

	best := -1
	var bestCost placementCost
	for _, ti := range order {
		if !teams[ti].hasRoom(u.Size()) {
			continue
		}
		cost := costOf(teams, ti, u, catchAll)
		if best == -1 || cost.less(bestCost) {
			best = ti
			bestCost = cost
		}
	}
	if best == -1 {
		// No team has room; should not happen with capacities summing to
		// the division size. Fall back to the largest remaining capacity.
		best = 0
		for i := 1; i < len(teams); i++ {
			if teams[i].Capacity-teams[i].Size() > teams[best].Capacity-teams[best].Size() {
				best = i
			}
		}
	}
	teams[best].Players = append(teams[best].Players, u.Members...)
}

// costOf evaluates placing the unit on team ti without mutating anything.
func costOf(teams []TeamBucket, ti int, u Unit, catchAll bool) placementCost {
	t := &teams[ti]
	size := t.Size() + u.Size()
	nonMale := t.NonMaleCount() + u.NonMaleCount()
	male := t.MaleCount() + u.MaleCount()
	newCount := t.NewCount()
	for _, m := range u.Members {
		if m.IsNew {
			newCount++
		}
	}
	maleQuota := t.Capacity - t.NonMaleQuota

	sizeFits := size <= t.Capacity
	genderFits := nonMale <= t.NonMaleQuota && male <= maleQuota

	var cost placementCost
	switch {
	case sizeFits && (catchAll || genderFits):
		cost.constraint = 0
	case sizeFits:
		cost.constraint = 1
	default:
		cost.constraint = 2
	}
	if catchAll {
		// The catch-all division has no gender ceiling, so only 0/1 apply.
		if cost.constraint == 2 {
			cost.constraint = 1
		}
	} else {
		if over := nonMale - t.NonMaleQuota; over > 0 {
			cost.gender += over
		}
		if over := male - maleQuota; over > 0 {
			cost.gender += over
		}
	}
	if over := newCount - t.NewQuota; over > 0 {
		cost.newPlayers = over
	}

	minSum, maxSum := math.Inf(1), math.Inf(-1)
	for i := range teams {
		sum := teams[i].ScoreSum()
		if i == ti {
			sum += u.AverageScore() * float64(u.Size())
		}
		if sum < minSum {
			minSum = sum
		}
		if sum > maxSum {
			maxSum = sum
		}
	}
	cost.spread = maxSum - minSum
	cost.size = size
	return cost
}

// swapForGender trades a non-male player from a team over its quota with a
// male player from a team under it. Among all eligible trades the pair with
// the closest scores wins; ties fall back to the global order. Reports
// whether a swap happened.
func swapForGender(teams []TeamBucket, swappable func(model.Candidate) bool, catchAll bool) bool {
	if catchAll {
		return false
	}
	return bestSwap(teams,
		func(t *TeamBucket) int { return t.NonMaleCount() - t.NonMaleQuota },
		func(p model.Candidate) bool { return !p.Gender.Male() },
		func(p model.Candidate) bool { return p.Gender.Male() },
		func(a, b model.Candidate) bool { return true },
		swappable)
}

// swapForNewPlayers trades a new player from a team over its new quota with
// a veteran of the same gender from a team under it.
func swapForNewPlayers(teams []TeamBucket, swappable func(model.Candidate) bool) bool {
	return bestSwap(teams,
		func(t *TeamBucket) int { return t.NewCount() - t.NewQuota },
		func(p model.Candidate) bool { return p.IsNew },
		func(p model.Candidate) bool { return !p.IsNew },
		func(a, b model.Candidate) bool { return a.Gender.Male() == b.Gender.Male() },
		swappable)
}

// bestSwap finds the closest-score eligible trade between any surplus team
// and any deficit team on the given metric and applies it.
func bestSwap(teams []TeamBucket, delta func(*TeamBucket) int, give, take func(model.Candidate) bool, compatible func(a, b model.Candidate) bool, swappable func(model.Candidate) bool) bool {
	type pick struct {
		team, idx int
	}
	var bestGive, bestTake pick
	bestDiff := math.Inf(1)
	found := false

	for si := range teams {
		if delta(&teams[si]) <= 0 {
			continue
		}
		for di := range teams {
			if delta(&teams[di]) >= 0 {
				continue
			}
			for ai, a := range teams[si].Players {
				if !give(a) || !swappable(a) {
					continue
				}
				for bi, b := range teams[di].Players {
					if !take(b) || !swappable(b) || !compatible(a, b) {
						continue
					}
					diff := math.Abs(a.PlacementScore - b.PlacementScore)
					if diff < bestDiff || (diff == bestDiff && found && tieBreak(a, b, teams[bestGive.team].Players[bestGive.idx], teams[bestTake.team].Players[bestTake.idx])) {
						bestDiff = diff
						bestGive = pick{si, ai}
						bestTake = pick{di, bi}
						found = true
					}
				}
			}
		}
	}
	if !found {
		return false
	}
	a := teams[bestGive.team].Players[bestGive.idx]
	b := teams[bestTake.team].Players[bestTake.idx]
	teams[bestGive.team].Players[bestGive.idx] = b
	teams[bestTake.team].Players[bestTake.idx] = a
	return true
}

func tieBreak(a, b, curA, curB model.Candidate) bool {
	if a.ID != curA.ID {
		return CandidateLess(a, curA)
	}
	return CandidateLess(b, curB)
}

// swapForScoreSpread trades two players of the same gender and new-status
// between the richest and poorest teams when the trade strictly shrinks the
// max-minus-min score spread.
func swapForScoreSpread(teams []TeamBucket, swappable func(model.Candidate) bool) bool {
	if len(teams) < 2 {
		return false
	}
	sums := make([]float64, len(teams))
	rich, poor := 0, 0
	for i := range teams {
		sums[i] = teams[i].ScoreSum()
		if sums[i] > sums[rich] {
			rich = i
		}
		if sums[i] < sums[poor] {
			poor = i
		}
	}
	spread := sums[rich] - sums[poor]
	if rich == poor || spread <= 0 {
		return false
	}

	bestA, bestB := -1, -1
	bestSpread := spread
	for ai, a := range teams[rich].Players {
		if !swappable(a) {
			continue
		}
		for bi, b := range teams[poor].Players {
			if !swappable(b) {
				continue
			}
			if a.Gender.Male() != b.Gender.Male() || a.IsNew != b.IsNew {
				continue
			}
			next := projectedSpread(sums, rich, poor, a.PlacementScore-b.PlacementScore)
			if next < bestSpread {
				bestSpread = next
				bestA, bestB = ai, bi
			}
		}
	}
	if bestA == -1 {
		return false
	}
	a := teams[rich].Players[bestA]
	teams[rich].Players[bestA] = teams[poor].Players[bestB]
	teams[poor].Players[bestB] = a
	return true
}

// projectedSpread recomputes the max-minus-min of the score sums after
// moving diff from rich to poor.
func projectedSpread(sums []float64, rich, poor int, diff float64) float64 {
	minSum, maxSum := math.Inf(1), math.Inf(-1)
	for i, s := range sums {
		switch i {
		case rich:
			s -= diff
		case poor:
			s += diff
		}
		if s < minSum {
			minSum = s
		}
		if s > maxSum {
			maxSum = s
		}
	}
	return maxSum - minSum
}

// orderTeam sorts a team for presentation: captain first, then the global
// placement order.
func orderTeam(t *TeamBucket) {
	sort.Slice(t.Players, func(i, j int) bool {
		a, b := t.Players[i], t.Players[j]
		if a.IsCaptain != b.IsCaptain {
			return a.IsCaptain
		}
		return CandidateLess(a, b)
	})
}
