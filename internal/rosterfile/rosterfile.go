// Package rosterfile reads candidate pools and division sets from YAML
// files, the input surface of the balance CLI. Persistence against the
// league store is handled by an external collaborator; this package only
// covers file-based rosters.
package rosterfile

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/leagueops/rosterd/core/model"
)

// CandidateDef is one candidate entry in a roster file.
type CandidateDef struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	Score           float64 `yaml:"score"`
	Gender          string  `yaml:"gender,omitempty"`
	Captain         bool    `yaml:"captain,omitempty"`
	CaptainDivision string  `yaml:"captain_division,omitempty"`
	PairWith        string  `yaml:"pair_with,omitempty"`
	New             bool    `yaml:"new,omitempty"`
	// Excluded players were filtered upstream (e.g. missing eligibility
	// paperwork) and never enter the engine.
	Excluded bool `yaml:"excluded,omitempty"`
}

// ToModel converts the entry. Entries without an id get a generated one.
func (c CandidateDef) ToModel() model.Candidate {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}
	return model.Candidate{
		ID:                id,
		DisplayName:       c.Name,
		PlacementScore:    c.Score,
		Gender:            model.Gender(c.Gender),
		IsCaptain:         c.Captain,
		CaptainDivisionID: c.CaptainDivision,
		PairUserID:        c.PairWith,
		IsNew:             c.New,
	}
}

// DivisionDef is one division entry in a roster file.
type DivisionDef struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Rank  int    `yaml:"rank"`
	Teams int    `yaml:"teams"`
}

// ToModel converts the entry.
func (d DivisionDef) ToModel() model.Division {
	return model.Division{ID: d.ID, DisplayName: d.Name, Rank: d.Rank, TeamCount: d.Teams}
}

// Roster is a full balancing input read from a file.
type Roster struct {
	Candidates []CandidateDef `yaml:"candidates"`
	Divisions  []DivisionDef  `yaml:"divisions"`
}

// Load reads and parses a roster file.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	return &r, nil
}

// Models converts the roster to engine inputs, dropping excluded players
// and validating every record.
func (r *Roster) Models() ([]model.Candidate, []model.Division, error) {
	var candidates []model.Candidate
	for _, def := range r.Candidates {
		if def.Excluded {
			continue
		}
		c := def.ToModel()
		if err := c.Validate(); err != nil {
			return nil, nil, err
		}
		candidates = append(candidates, c)
	}
	var divisions []model.Division
	for _, def := range r.Divisions {
		d := def.ToModel()
		if err := d.Validate(); err != nil {
			return nil, nil, err
		}
		divisions = append(divisions, d)
	}
	return candidates, divisions, nil
}
