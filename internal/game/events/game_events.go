package events

import (
	"time"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted = "game.started"
	TypeMoveApplied = "move.applied"
	TypeGameEnded   = "game.ended"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Piles       core.State
	FirstPlayer core.Player
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, piles core.State, first core.Player) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeGameStarted,
			Time:      time.Now(),
			Game:      gameID,
		},
		Piles:       piles,
		FirstPlayer: first,
	}
}

// MoveAppliedEvent is published after every accepted move
type MoveAppliedEvent struct {
	BaseEvent
	Player core.Player
	Action core.Action
	Before core.State
	After  core.State
	Turn   int
}

// NewMoveAppliedEvent creates a new MoveAppliedEvent
func NewMoveAppliedEvent(gameID string, player core.Player, action core.Action, before, after core.State, turn int) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeMoveApplied,
			Time:      time.Now(),
			Game:      gameID,
		},
		Player: player,
		Action: action,
		Before: before,
		After:  after,
		Turn:   turn,
	}
}

// GameEndedEvent is published when the last object is taken
type GameEndedEvent struct {
	BaseEvent
	Winner    core.Player
	Duration  time.Duration
	FinalTurn int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.Player, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeGameEnded,
			Time:      time.Now(),
			Game:      gameID,
		},
		Winner:    winner,
		Duration:  duration,
		FinalTurn: finalTurn,
	}
}
