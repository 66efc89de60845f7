package core

import "fmt"

// Action removes Count objects from the pile at index Pile
type Action struct {
	Pile  int
	Count int
}

// Validate checks the action against the given position.
// It does not know whether the game is already over; the engine checks that.
func (a Action) Validate(s State) error {
	if a.Pile < 0 || a.Pile >= len(s) {
		return ErrInvalidPile
	}
	if a.Count < 1 || a.Count > s[a.Pile] {
		return ErrInvalidCount
	}
	return nil
}

// Apply returns the position after the action. The caller must validate first.
func (a Action) Apply(s State) State {
	s[a.Pile] -= a.Count
	return s
}

func (a Action) String() string {
	return fmt.Sprintf("take %d from pile %d", a.Count, a.Pile)
}
