package rules

import (
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/rs/zerolog"
)

// IsTerminal reports whether every pile is empty
func IsTerminal(s core.State) bool {
	return s.IsEmpty()
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver decides the outcome after mover has produced the given position.
// The player who takes the last object wins.
// Returns (isGameOver, winner); winner is core.NoPlayer while the game continues.
func (wc *WinConditionChecker) CheckGameOver(s core.State, mover core.Player) (bool, core.Player) {
	if !IsTerminal(s) {
		wc.logger.Debug().Int("objects_left", s.Total()).Msg("Game continues")
		return false, core.NoPlayer
	}

	wc.logger.Debug().Int("winner_player_id", int(mover)).Msg("Winner determined")
	return true, mover
}
