package model

// Assignment is the engine output for a single player: the division and
// team the player landed on. Team numbers are 1-based, matching what the
// dashboard displays.
type Assignment struct {
	PlayerID   string `json:"player_id"`
	DivisionID string `json:"division_id"`
	TeamNumber int    `json:"team_number"`
	IsCaptain  bool   `json:"is_captain"`
}
