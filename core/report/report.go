// Package report derives balance-quality summaries from a computation
// result, for display alongside the assignments.
package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/leagueops/rosterd/core/balance"
)

// DivisionReport summarizes how balanced one division's teams came out.
type DivisionReport struct {
	DivisionID   string    `json:"division_id"`
	DivisionName string    `json:"division_name"`
	Players      int       `json:"players"`
	Teams        int       `json:"teams"`
	TeamScores   []float64 `json:"team_scores"`
	MeanScore    float64   `json:"mean_score"`
	ScoreStdDev  float64   `json:"score_std_dev"`
	ScoreSpread  float64   `json:"score_spread"`
	// GenderDeviation sums each team's absolute distance from its
	// non-male quota. Zero means every quota was met exactly.
	GenderDeviation int `json:"gender_deviation"`
	// NewPlayerDeviation is the analogous distance from the new-player
	// quotas.
	NewPlayerDeviation int `json:"new_player_deviation"`
}

// Build computes a report for every division in the result.
func Build(res *balance.Result) []DivisionReport {
	reports := make([]DivisionReport, 0, len(res.Divisions))
	for _, d := range res.Divisions {
		r := DivisionReport{
			DivisionID:   d.Division.ID,
			DivisionName: d.Division.DisplayName,
			Players:      len(d.Candidates),
			Teams:        len(d.Teams),
		}
		for i := range d.Teams {
			t := &d.Teams[i]
			r.TeamScores = append(r.TeamScores, t.ScoreSum())
			r.GenderDeviation += abs(t.NonMaleCount() - t.NonMaleQuota)
			r.NewPlayerDeviation += abs(t.NewCount() - t.NewQuota)
		}
		if len(r.TeamScores) > 0 {
			r.MeanScore = stat.Mean(r.TeamScores, nil)
			if len(r.TeamScores) > 1 {
				r.ScoreStdDev = stat.StdDev(r.TeamScores, nil)
			}
			r.ScoreSpread = spread(r.TeamScores)
		}
		reports = append(reports, r)
	}
	return reports
}

func spread(xs []float64) float64 {
	minX, maxX := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}
	return maxX - minX
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
