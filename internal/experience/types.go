package experience

import (
	"time"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

// Transition is one credit-assignment step: the player's earlier decision in
// State, the position it led to by the time the player moves again (or the
// game ends), and the reward applied
type Transition struct {
	GameID    string
	Episode   int
	Player    core.Player
	State     core.State
	Action    core.Action
	NextState core.State
	Reward    float64
	Done      bool
}

// Experience is a recorded transition
type Experience struct {
	ID          string
	GameID      string
	Episode     int
	Player      core.Player
	State       core.State
	Action      core.Action
	NextState   core.State
	Reward      float64
	Done        bool
	ActionMask  []bool
	CollectedAt time.Time
}

// Collector receives transitions as the trainer applies them
type Collector interface {
	OnTransition(t Transition)
	OnEpisodeEnd(episode int, winner core.Player)
}
