// Package scenarios loads YAML balancing scenarios and checks the engine's
// output against their expectations. The scenario files double as living
// documentation of the placement rules.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leagueops/rosterd/internal/rosterfile"
)

// Expected lists the checks a scenario asserts beyond the always-on
// invariants.
type Expected struct {
	// DivisionSizes is the expected player count per division, in rank
	// order.
	DivisionSizes []int `yaml:"division_sizes,omitempty"`
	// NonMaleTargets is the expected non-male target per division.
	NonMaleTargets []int `yaml:"non_male_targets,omitempty"`
	// MaleTargets is the expected male target per division.
	MaleTargets []int `yaml:"male_targets,omitempty"`
	// SameTeam lists groups of player ids that must end up on one team.
	SameTeam [][]string `yaml:"same_team,omitempty"`
	// PlayerDivisions pins player ids to division ids.
	PlayerDivisions map[string]string `yaml:"player_divisions,omitempty"`
}

// Scenario is a full balancing input plus its expectations.
type Scenario struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description,omitempty"`
	Candidates  []rosterfile.CandidateDef `yaml:"candidates"`
	Divisions   []rosterfile.DivisionDef  `yaml:"divisions"`
	Expected    Expected                  `yaml:"expected"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
