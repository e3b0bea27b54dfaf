package report

import (
	"math"
	"testing"

	"github.com/leagueops/rosterd/core/balance"
	"github.com/leagueops/rosterd/core/model"
)

func TestBuild(t *testing.T) {
	res := &balance.Result{
		Divisions: []balance.DivisionRoster{
			{
				Division: model.Division{ID: "upper", DisplayName: "Upper", TeamCount: 2},
				Candidates: []model.Candidate{
					{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
				},
				Teams: []balance.TeamBucket{
					{
						Index: 0, Capacity: 2, NonMaleQuota: 1,
						Players: []model.Candidate{
							{ID: "a", PlacementScore: 1, Gender: model.GenderMale},
							{ID: "b", PlacementScore: 4, Gender: model.GenderNonMale},
						},
					},
					{
						Index: 1, Capacity: 2, NonMaleQuota: 1, NewQuota: 1,
						Players: []model.Candidate{
							{ID: "c", PlacementScore: 2, Gender: model.GenderMale},
							{ID: "d", PlacementScore: 5, Gender: model.GenderMale, IsNew: true},
						},
					},
				},
			},
		},
	}

	reports := Build(res)
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	r := reports[0]
	if r.DivisionID != "upper" || r.Players != 4 || r.Teams != 2 {
		t.Fatalf("unexpected shape: %+v", r)
	}
	// Team sums 5 and 7.
	if r.MeanScore != 6 {
		t.Errorf("mean %v, want 6", r.MeanScore)
	}
	if r.ScoreSpread != 2 {
		t.Errorf("spread %v, want 2", r.ScoreSpread)
	}
	if math.Abs(r.ScoreStdDev-math.Sqrt2) > 1e-9 {
		t.Errorf("stddev %v, want sqrt(2)", r.ScoreStdDev)
	}
	// Team 1 misses its non-male quota by one; team 1 meets its new quota.
	if r.GenderDeviation != 1 {
		t.Errorf("gender deviation %d, want 1", r.GenderDeviation)
	}
	if r.NewPlayerDeviation != 0 {
		t.Errorf("new-player deviation %d, want 0", r.NewPlayerDeviation)
	}
}

func TestBuildEmptyResult(t *testing.T) {
	if got := Build(&balance.Result{}); len(got) != 0 {
		t.Fatalf("empty result must produce no reports, got %d", len(got))
	}
}

func TestBuildSingleTeam(t *testing.T) {
	res := &balance.Result{
		Divisions: []balance.DivisionRoster{
			{
				Division: model.Division{ID: "solo", TeamCount: 1},
				Candidates: []model.Candidate{
					{ID: "a"},
				},
				Teams: []balance.TeamBucket{
					{Index: 0, Capacity: 1, Players: []model.Candidate{{ID: "a", PlacementScore: 3}}},
				},
			},
		},
	}
	r := Build(res)[0]
	if r.MeanScore != 3 || r.ScoreSpread != 0 || r.ScoreStdDev != 0 {
		t.Fatalf("single team stats: %+v", r)
	}
}
