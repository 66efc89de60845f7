package game

import "github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"

// GameState is a read-only snapshot of an Engine
type GameState struct {
	GameID        string
	Piles         core.State
	CurrentPlayer core.Player
	Winner        core.Player
	Turn          int
}

// IsGameOver reports whether a winner has been recorded
func (gs GameState) IsGameOver() bool {
	return gs.Winner != core.NoPlayer
}
