package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/rules"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/setup"
	"github.com/rs/zerolog"
)

// GameConfig holds the inputs for creating an Engine
type GameConfig struct {
	GameID string
	Setup  setup.Config
	// Start fixes the initial position instead of drawing it from Setup
	Start       *core.State
	FirstPlayer core.Player
	Rng         *rand.Rand
	Logger      zerolog.Logger
	// EventBus is optional; events are only published when set
	EventBus events.Publisher
}

// Engine owns one game: the piles, the player to move and the winner once
// the last object has been taken. It is mutated only through Move.
type Engine struct {
	gameID    string
	state     core.State
	player    core.Player
	winner    core.Player
	turn      int
	startedAt time.Time

	checker  *rules.WinConditionChecker
	eventBus events.Publisher
	logger   zerolog.Logger
}

// NewEngine creates a new game from a fixed or randomly generated position
func NewEngine(cfg GameConfig) (*Engine, error) {
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.New().String()
	}
	if !cfg.FirstPlayer.IsValid() {
		return nil, fmt.Errorf("invalid first player %d: %w", cfg.FirstPlayer, core.ErrInvalidPlayer)
	}

	var start core.State
	if cfg.Start != nil {
		start = *cfg.Start
		if !start.IsValid() {
			return nil, fmt.Errorf("invalid start position %s", start)
		}
	} else {
		if err := cfg.Setup.Validate(); err != nil {
			return nil, fmt.Errorf("invalid setup: %w", err)
		}
		start = setup.NewGenerator(cfg.Setup, cfg.Rng).Generate()
	}

	logger := cfg.Logger.With().Str("component", "GameEngine").Str("game_id", cfg.GameID).Logger()
	e := &Engine{
		gameID:    cfg.GameID,
		state:     start,
		player:    cfg.FirstPlayer,
		winner:    core.NoPlayer,
		startedAt: time.Now(),
		checker:   rules.NewWinConditionChecker(logger),
		eventBus:  cfg.EventBus,
		logger:    logger,
	}

	// A start with nothing on the table is already decided; nobody moved into it
	if rules.IsTerminal(start) {
		e.logger.Warn().Msg("Game created with every pile empty")
	}

	e.publish(events.NewGameStartedEvent(e.gameID, start, e.player))
	e.logger.Debug().Str("piles", start.String()).Int("first_player", int(e.player)).Msg("Game created")
	return e, nil
}

// Move applies the current player's action. On success the piles shrink and
// either the mover is recorded as winner or the turn passes to the opponent.
func (e *Engine) Move(action core.Action) error {
	if e.IsGameOver() || rules.IsTerminal(e.state) {
		return core.NewIllegalMoveError(e.player, action, e.state, core.ErrGameOver)
	}
	if err := action.Validate(e.state); err != nil {
		return core.NewIllegalMoveError(e.player, action, e.state, err)
	}

	before := e.state
	mover := e.player
	e.state = action.Apply(e.state)
	e.turn++

	e.logger.Debug().
		Int("player_id", int(mover)).
		Int("pile", action.Pile).
		Int("count", action.Count).
		Str("piles", e.state.String()).
		Msg("Move applied")
	e.publish(events.NewMoveAppliedEvent(e.gameID, mover, action, before, e.state, e.turn))

	if over, winner := e.checker.CheckGameOver(e.state, mover); over {
		e.winner = winner
		e.publish(events.NewGameEndedEvent(e.gameID, winner, time.Since(e.startedAt), e.turn))
		return nil
	}

	e.player = core.OtherPlayer(mover)
	return nil
}

func (e *Engine) publish(event events.Event) {
	if e.eventBus != nil {
		e.eventBus.Publish(event)
	}
}

// Public accessors
func (e *Engine) GameID() string             { return e.gameID }
func (e *Engine) State() core.State          { return e.state }
func (e *Engine) CurrentPlayer() core.Player { return e.player }
func (e *Engine) Turn() int                  { return e.turn }
func (e *Engine) IsGameOver() bool           { return e.winner != core.NoPlayer }

// Winner returns the winning player, or core.NoPlayer while the game is running
func (e *Engine) Winner() core.Player { return e.winner }

// LegalActions lists the moves available to the current player
func (e *Engine) LegalActions() []core.Action {
	if e.IsGameOver() {
		return nil
	}
	return rules.LegalActions(e.state)
}

// GameState returns a snapshot of the game
func (e *Engine) GameState() GameState {
	return GameState{
		GameID:        e.gameID,
		Piles:         e.state,
		CurrentPlayer: e.player,
		Winner:        e.winner,
		Turn:          e.turn,
	}
}
