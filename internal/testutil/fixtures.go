package testutil

import (
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

// Named positions shared across package tests
var (
	// EmptyPiles is the terminal position
	EmptyPiles = core.State{0, 0, 0}
	// LastObject leaves exactly one winning move
	LastObject = core.State{1, 0, 0}
	// TwoSingles is a lost position for the player to move
	TwoSingles = core.State{1, 1, 0}
	// ThreeZeroOne has an empty middle pile
	ThreeZeroOne = core.State{3, 0, 1}
	// FullPiles is the largest default starting position
	FullPiles = core.State{10, 10, 10}
)

// Piles builds a state from three pile sizes
func Piles(a, b, c int) core.State {
	return core.State{a, b, c}
}

// ActionsFor lists (pile, count) pairs as actions, in the given order
func ActionsFor(pairs ...[2]int) []core.Action {
	actions := make([]core.Action, 0, len(pairs))
	for _, p := range pairs {
		actions = append(actions, core.Action{Pile: p[0], Count: p[1]})
	}
	return actions
}
