// Package export writes assignment lists in the formats the persistence
// collaborator and spreadsheet users consume.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/leagueops/rosterd/core/model"
)

// WriteJSON writes the assignment list to w in JSON format.
func WriteJSON(w io.Writer, assignments []model.Assignment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(assignments)
}

// WriteCSV writes the assignment list to w as CSV with a header row.
func WriteCSV(w io.Writer, assignments []model.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"player_id", "division_id", "team_number", "is_captain"}); err != nil {
		return err
	}
	for _, a := range assignments {
		rec := []string{
			a.PlayerID,
			a.DivisionID,
			strconv.Itoa(a.TeamNumber),
			strconv.FormatBool(a.IsCaptain),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
