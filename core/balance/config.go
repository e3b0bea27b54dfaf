package balance

import "fmt"

// Config bounds the local-search passes of a computation. The defaults are
// the production limits; raising them trades runtime for balance quality.
type Config struct {
	// DivisionPasses caps the adjacent-division gender swap passes.
	DivisionPasses int `json:"division_passes"`
	// GenderSwaps caps the per-division gender balancing swaps.
	GenderSwaps int `json:"gender_swaps"`
	// NewPlayerSwaps caps the per-division new-player balancing swaps.
	NewPlayerSwaps int `json:"new_player_swaps"`
	// ScoreSwaps caps the per-division score spread reduction swaps.
	ScoreSwaps int `json:"score_swaps"`
}

// SetDefaults applies the production pass limits to unset fields.
func (c *Config) SetDefaults() {
	if c.DivisionPasses == 0 {
		c.DivisionPasses = 6
	}
	if c.GenderSwaps == 0 {
		c.GenderSwaps = 20
	}
	if c.NewPlayerSwaps == 0 {
		c.NewPlayerSwaps = 12
	}
	if c.ScoreSwaps == 0 {
		c.ScoreSwaps = 24
	}
}

// Validate checks that no limit is negative.
func (c Config) Validate() error {
	if c.DivisionPasses < 0 || c.GenderSwaps < 0 || c.NewPlayerSwaps < 0 || c.ScoreSwaps < 0 {
		return fmt.Errorf("pass limits must not be negative")
	}
	return nil
}
