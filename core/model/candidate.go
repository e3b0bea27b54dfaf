package model

import "fmt"

// Gender is the gender recorded on a tryout registration. The balancing
// quotas only distinguish male from everything else; an unknown gender
// counts toward the non-male bucket.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderNonMale Gender = "not-male"
	GenderUnknown Gender = ""
)

// Male reports whether the gender counts toward the male quota bucket.
func (g Gender) Male() bool { return g == GenderMale }

// Candidate is one tryout registration entering a balancing run. Candidates
// are immutable for the duration of a computation; captains arrive already
// locked to a division.
type Candidate struct {
	ID             string
	DisplayName    string
	PlacementScore float64 // lower is stronger, used as the primary sort key
	Gender         Gender
	IsCaptain      bool
	// CaptainDivisionID locks a captain to a division. Empty for
	// non-captains.
	CaptainDivisionID string
	// PairUserID is the id of a requested partner. The request only takes
	// effect when it is mutual.
	PairUserID string
	// IsNew marks a candidate with no prior draft history.
	IsNew bool
}

// Validate checks that the candidate record is usable by the engine.
func (c Candidate) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("candidate id is required")
	}
	if c.IsCaptain && c.CaptainDivisionID == "" {
		return fmt.Errorf("captain %s has no division lock", c.ID)
	}
	return nil
}
