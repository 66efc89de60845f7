package game

import (
	"math/rand"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

// RandomAction picks a uniformly random legal move for the current player.
// This is a baseline opponent for evaluation, demos and tests.
// Returns false when the game is already over.
func RandomAction(g *Engine, rng *rand.Rand) (core.Action, bool) {
	legal := g.LegalActions()
	if len(legal) == 0 {
		return core.Action{}, false
	}
	return legal[rng.Intn(len(legal))], true
}
