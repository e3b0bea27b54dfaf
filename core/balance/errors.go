package balance

import "errors"

// ErrNothingToPlace is returned by callers that want to surface an empty
// computation (no candidates, or no teams configured) as a user message.
var ErrNothingToPlace = errors.New("nothing to place")

// Move rejection causes. A rejected move never mutates state.
var (
	ErrMoveOutOfRange    = errors.New("target division out of range")
	ErrMoveCaptainLocked = errors.New("captains and their partners cannot be moved")
	ErrMoveNoReplacement = errors.New("no eligible replacement in target division")
	ErrMovePlayerUnknown = errors.New("player not found in division")
)

// MoveError is a rejected manual move with a user-facing reason.
type MoveError struct {
	Cause  error
	Reason string
}

func (e *MoveError) Error() string { return e.Reason }

// Unwrap exposes the rejection cause for errors.Is checks.
func (e *MoveError) Unwrap() error { return e.Cause }
