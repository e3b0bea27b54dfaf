package balance

import (
	"reflect"
	"testing"

	"github.com/leagueops/rosterd/core/model"
)

func TestSnakeOrder(t *testing.T) {
	got := snakeOrder(3, 7)
	want := []int{0, 1, 2, 2, 1, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("snakeOrder(3,7) = %v, want %v", got, want)
	}
}

func TestFormTeams_Capacities(t *testing.T) {
	candidates := []model.Candidate{
		male("a", 1), male("b", 2), male("c", 3), male("d", 4),
		male("e", 5), male("f", 6), male("g", 7),
	}
	teams, _ := FormTeams(model.Division{ID: "d", TeamCount: 3}, candidates, true, defaultConfig(), nopLogger{})
	if len(teams) != 3 {
		t.Fatalf("got %d teams", len(teams))
	}
	sizes := []int{teams[0].Size(), teams[1].Size(), teams[2].Size()}
	if !reflect.DeepEqual(sizes, []int{3, 2, 2}) {
		t.Fatalf("sizes %v, want [3 2 2]", sizes)
	}
}

func TestFormTeams_SingleTeamWithCaptain(t *testing.T) {
	captain := male("cap", 1)
	captain.IsCaptain = true
	captain.CaptainDivisionID = "d"
	candidates := []model.Candidate{captain, male("a", 2), male("b", 3), nonMale("c", 4)}
	teams, _ := FormTeams(model.Division{ID: "d", TeamCount: 1}, candidates, true, defaultConfig(), nopLogger{})
	if len(teams) != 1 || teams[0].Size() != 4 {
		t.Fatalf("everyone belongs on the single team, got %+v", teams)
	}
	if teams[0].Players[0].ID != "cap" {
		t.Errorf("captain must be listed first, got %s", teams[0].Players[0].ID)
	}
}

func TestFormTeams_CaptainsSeedByStrength(t *testing.T) {
	c1 := male("cap1", 5)
	c1.IsCaptain = true
	c1.CaptainDivisionID = "d"
	c2 := male("cap2", 2)
	c2.IsCaptain = true
	c2.CaptainDivisionID = "d"
	candidates := []model.Candidate{
		c1, c2, male("a", 1), male("b", 3), male("e", 4), male("f", 6),
	}
	teams, _ := FormTeams(model.Division{ID: "d", TeamCount: 2}, candidates, true, defaultConfig(), nopLogger{})
	if teams[0].Players[0].ID != "cap2" {
		t.Errorf("stronger captain seeds team 0, got %s", teams[0].Players[0].ID)
	}
	if teams[1].Players[0].ID != "cap1" {
		t.Errorf("weaker captain seeds team 1, got %s", teams[1].Players[0].ID)
	}
}

func TestFormTeams_CaptainPartnerJoinsTeam(t *testing.T) {
	captain := male("cap", 1)
	captain.IsCaptain = true
	captain.CaptainDivisionID = "d"
	captain.PairUserID = "pal"
	pal := nonMale("pal", 8)
	pal.PairUserID = "cap"
	candidates := []model.Candidate{
		captain, pal, male("a", 2), male("b", 3), nonMale("e", 4), male("f", 5),
	}
	teams, _ := FormTeams(model.Division{ID: "d", TeamCount: 2}, candidates, true, defaultConfig(), nopLogger{})
	team := teamOf(teams, "cap")
	if team == nil || !hasPlayer(team, "pal") {
		t.Fatalf("captain's mutual partner must share the team")
	}
}

func TestFormTeams_PairStaysTogether(t *testing.T) {
	a := male("a", 2)
	a.PairUserID = "b"
	b := nonMale("b", 7)
	b.PairUserID = "a"
	candidates := []model.Candidate{
		a, b, male("c", 1), male("d", 3), nonMale("e", 4), male("f", 5),
		nonMale("g", 6), male("h", 8),
	}
	teams, _ := FormTeams(model.Division{ID: "d", TeamCount: 2}, candidates, false, defaultConfig(), nopLogger{})
	ta, tb := teamOf(teams, "a"), teamOf(teams, "b")
	if ta == nil || tb == nil || ta.Index != tb.Index {
		t.Fatal("mutual pair split across teams")
	}
}

func TestFormTeams_GenderQuotasRespected(t *testing.T) {
	candidates := []model.Candidate{
		male("m1", 1), male("m2", 2), male("m3", 3), male("m4", 4),
		nonMale("f1", 5), nonMale("f2", 6), nonMale("f3", 7), nonMale("f4", 8),
	}
	teams, _ := FormTeams(model.Division{ID: "d", TeamCount: 2}, candidates, false, defaultConfig(), nopLogger{})
	for i := range teams {
		if teams[i].NonMaleCount() != teams[i].NonMaleQuota {
			t.Errorf("team %d has %d non-male players, quota %d", i, teams[i].NonMaleCount(), teams[i].NonMaleQuota)
		}
	}
}

func TestFormTeams_TerminatesOnAdversarialPool(t *testing.T) {
	// An all-one-gender pool leaves the gender pass with permanent
	// surpluses; the iteration caps still guarantee termination.
	var candidates []model.Candidate
	for i := 0; i < 30; i++ {
		c := nonMale(string(rune('A'+i)), float64(i))
		c.IsNew = i%2 == 0
		candidates = append(candidates, c)
	}
	teams, _ := FormTeams(model.Division{ID: "d", TeamCount: 4}, candidates, false, defaultConfig(), nopLogger{})
	total := 0
	for i := range teams {
		total += teams[i].Size()
	}
	if total != 30 {
		t.Fatalf("placed %d of 30", total)
	}
}

func TestFormTeams_ScoreSpreadBounded(t *testing.T) {
	var candidates []model.Candidate
	for i := 0; i < 16; i++ {
		candidates = append(candidates, male(string(rune('a'+i)), float64(i+1)))
	}
	teams, _ := FormTeams(model.Division{ID: "d", TeamCount: 4}, candidates, true, defaultConfig(), nopLogger{})
	minSum, maxSum := teams[0].ScoreSum(), teams[0].ScoreSum()
	for i := 1; i < len(teams); i++ {
		s := teams[i].ScoreSum()
		if s < minSum {
			minSum = s
		}
		if s > maxSum {
			maxSum = s
		}
	}
	// 16 players scoring 1..16 over 4 teams of 4: a fair split keeps team
	// sums tight around 34.
	if maxSum-minSum > 8 {
		t.Fatalf("score spread %v too wide (sums %v..%v)", maxSum-minSum, minSum, maxSum)
	}
}

func TestFormTeams_TeamOrderedCaptainFirst(t *testing.T) {
	captain := male("cap", 9)
	captain.IsCaptain = true
	captain.CaptainDivisionID = "d"
	candidates := []model.Candidate{male("a", 1), captain, male("b", 2)}
	teams, _ := FormTeams(model.Division{ID: "d", TeamCount: 1}, candidates, true, defaultConfig(), nopLogger{})
	ids := []string{}
	for _, p := range teams[0].Players {
		ids = append(ids, p.ID)
	}
	if !reflect.DeepEqual(ids, []string{"cap", "a", "b"}) {
		t.Fatalf("team order %v, want captain first then score order", ids)
	}
}

func teamOf(teams []TeamBucket, playerID string) *TeamBucket {
	for i := range teams {
		if hasPlayer(&teams[i], playerID) {
			return &teams[i]
		}
	}
	return nil
}

func hasPlayer(t *TeamBucket, playerID string) bool {
	for _, p := range t.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}
