package balance

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leagueops/rosterd/core/model"
)

func twoRosters() []DivisionRoster {
	return []DivisionRoster{
		{
			Division: model.Division{ID: "upper", DisplayName: "Upper", Rank: 0, TeamCount: 2},
			Candidates: []model.Candidate{
				male("m1", 1), male("m2", 2), nonMale("f1", 3), nonMale("f2", 4),
			},
		},
		{
			Division: model.Division{ID: "lower", DisplayName: "Lower", Rank: 1, TeamCount: 2},
			CatchAll: true,
			Candidates: []model.Candidate{
				male("m3", 5), male("m4", 6), nonMale("f3", 7), nonMale("f4", 8),
			},
		},
	}
}

func TestMove_SwapsClosestScoreSameGender(t *testing.T) {
	rosters := twoRosters()
	src, dst, err := Move(rosters, 0, "m2", MoveDown)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if src != 0 || dst != 1 {
		t.Fatalf("affected divisions (%d,%d), want (0,1)", src, dst)
	}
	if len(rosters[0].Candidates) != 4 || len(rosters[1].Candidates) != 4 {
		t.Fatalf("division sizes must be preserved")
	}
	if !containsID(rosters[1].Candidates, "m2") {
		t.Error("m2 should be in the lower division")
	}
	// m3 (score 5) is the closest male to m2 (score 2).
	if !containsID(rosters[0].Candidates, "m3") {
		t.Error("m3 should have come up as the replacement")
	}
}

func TestMove_PairMovesTogether(t *testing.T) {
	rosters := twoRosters()
	rosters[0].Candidates[1].PairUserID = "f1"
	rosters[0].Candidates[2].PairUserID = "m2"

	_, _, err := Move(rosters, 0, "m2", MoveDown)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if !containsID(rosters[1].Candidates, "m2") || !containsID(rosters[1].Candidates, "f1") {
		t.Fatal("both pair members should move down")
	}
	if len(rosters[0].Candidates) != 4 || len(rosters[1].Candidates) != 4 {
		t.Fatal("sizes must be preserved for a pair move")
	}
	// Replacements of matching genders: one male, one non-male.
	if !containsID(rosters[0].Candidates, "m3") || !containsID(rosters[0].Candidates, "f3") {
		t.Errorf("upper division now holds %v", ids(rosters[0].Candidates))
	}
}

func TestMove_OutOfRange(t *testing.T) {
	rosters := twoRosters()
	before := ids(rosters[0].Candidates)
	_, _, err := Move(rosters, 1, "m3", MoveDown)
	if !errors.Is(err, ErrMoveOutOfRange) {
		t.Fatalf("expected out-of-range error, got %v", err)
	}
	if !reflect.DeepEqual(before, ids(rosters[0].Candidates)) {
		t.Fatal("failed move must not mutate rosters")
	}
}

func TestMove_CaptainLocked(t *testing.T) {
	rosters := twoRosters()
	rosters[0].Candidates[0].IsCaptain = true
	rosters[0].Candidates[0].CaptainDivisionID = "upper"
	_, _, err := Move(rosters, 0, "m1", MoveDown)
	if !errors.Is(err, ErrMoveCaptainLocked) {
		t.Fatalf("expected captain-locked error, got %v", err)
	}
}

func TestMove_CaptainPartnerLocked(t *testing.T) {
	rosters := twoRosters()
	rosters[0].Candidates[0].IsCaptain = true
	rosters[0].Candidates[0].CaptainDivisionID = "upper"
	rosters[0].Candidates[0].PairUserID = "m2"
	rosters[0].Candidates[1].PairUserID = "m1"
	_, _, err := Move(rosters, 0, "m2", MoveDown)
	if !errors.Is(err, ErrMoveCaptainLocked) {
		t.Fatalf("a captain's partner is locked too, got %v", err)
	}
}

func TestMove_NoReplacementLeavesStateUntouched(t *testing.T) {
	rosters := twoRosters()
	// Lower division without any male players.
	rosters[1].Candidates = []model.Candidate{
		nonMale("f3", 7), nonMale("f4", 8), nonMale("f5", 9), nonMale("f6", 10),
	}
	upperBefore := ids(rosters[0].Candidates)
	lowerBefore := ids(rosters[1].Candidates)

	_, _, err := Move(rosters, 0, "m1", MoveDown)
	if !errors.Is(err, ErrMoveNoReplacement) {
		t.Fatalf("expected no-replacement error, got %v", err)
	}
	if !reflect.DeepEqual(upperBefore, ids(rosters[0].Candidates)) ||
		!reflect.DeepEqual(lowerBefore, ids(rosters[1].Candidates)) {
		t.Fatal("rejected move must be a no-op")
	}
}

func TestMove_UnknownPlayer(t *testing.T) {
	rosters := twoRosters()
	_, _, err := Move(rosters, 0, "ghost", MoveDown)
	if !errors.Is(err, ErrMovePlayerUnknown) {
		t.Fatalf("expected unknown-player error, got %v", err)
	}
}

func TestMove_UpDirection(t *testing.T) {
	rosters := twoRosters()
	_, dst, err := Move(rosters, 1, "f3", MoveUp)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if dst != 0 {
		t.Fatalf("target division %d, want 0", dst)
	}
	if !containsID(rosters[0].Candidates, "f3") {
		t.Error("f3 should be in the upper division")
	}
	// f2 (score 4) is the closest non-male to f3 (score 7).
	if !containsID(rosters[1].Candidates, "f2") {
		t.Error("f2 should have moved down in compensation")
	}
}

func containsID(cs []model.Candidate, id string) bool {
	for _, c := range cs {
		if c.ID == id {
			return true
		}
	}
	return false
}

func ids(cs []model.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
