package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leagueops/rosterd/core/model"
)

func sampleAssignments() []model.Assignment {
	return []model.Assignment{
		{PlayerID: "p1", DivisionID: "upper", TeamNumber: 1, IsCaptain: true},
		{PlayerID: "p2", DivisionID: "upper", TeamNumber: 2},
		{PlayerID: "p3", DivisionID: "lower", TeamNumber: 1},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleAssignments()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded []model.Assignment
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 3 || decoded[0].PlayerID != "p1" || !decoded[0].IsCaptain {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"team_number": 1`) {
		t.Error("output should be indented")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleAssignments()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3 rows", len(lines))
	}
	if lines[0] != "player_id,division_id,team_number,is_captain" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "p1,upper,1,true" {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "player_id,division_id,team_number,is_captain" {
		t.Errorf("empty list should still emit the header, got %q", buf.String())
	}
}
