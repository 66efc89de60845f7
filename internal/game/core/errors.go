package core

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is over")
	ErrInvalidPile   = errors.New("invalid pile")
	ErrInvalidCount  = errors.New("invalid number of objects")
	ErrInvalidPlayer = errors.New("invalid player ID")
)

// IllegalMoveError describes a rejected move. It matches both ErrIllegalMove
// and the specific reason with errors.Is.
type IllegalMoveError struct {
	Player Player
	Action Action
	State  State
	Reason error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("player %d: %s at %s: %v", e.Player, e.Action, e.State, e.Reason)
}

func (e *IllegalMoveError) Unwrap() []error {
	return []error{ErrIllegalMove, e.Reason}
}

// NewIllegalMoveError builds an IllegalMoveError for the given reason
func NewIllegalMoveError(p Player, a Action, s State, reason error) *IllegalMoveError {
	return &IllegalMoveError{Player: p, Action: a, State: s, Reason: reason}
}

// WrapEpisodeError adds episode and phase context to an error
func WrapEpisodeError(episode int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("episode %d [%s]: %w", episode, phase, err)
}
