package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/rules"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/setup"
)

var (
	ErrInputClosed = errors.New("input closed before the game ended")
	ErrNilAgent    = errors.New("play session needs an agent")
)

// RandomSeat lets the session pick the human's seat
const RandomSeat = -1

// Config holds the settings of one interactive game
type Config struct {
	HumanPlayer int // 0, 1 or RandomSeat
	ThinkDelay  time.Duration
	Setup       setup.Config
	// Start fixes the initial position instead of drawing it from Setup
	Start *core.State
}

// DefaultConfig returns a random seat, a one second think delay and the
// default pile range
func DefaultConfig() Config {
	return Config{
		HumanPlayer: RandomSeat,
		ThinkDelay:  time.Second,
		Setup:       setup.DefaultConfig(),
	}
}

// Result reports how a session ended
type Result struct {
	GameID string
	Human  core.Player
	Winner core.Player
	Turns  int
}

// HumanWon reports whether the human took the last object
func (r Result) HumanWon() bool {
	return r.Winner == r.Human
}

// Session plays one game between a human on a line-based console and the
// agent, which never explores
type Session struct {
	agent   *agent.Agent
	cfg     Config
	scanner *bufio.Scanner
	out     io.Writer
	render  *Renderer
	rng     *rand.Rand
	bus     events.Bus
	human   core.Player
	base    zerolog.Logger
	logger  zerolog.Logger
}

// NewSession creates a session reading moves from in and writing to out
func NewSession(a *agent.Agent, cfg Config, in io.Reader, out io.Writer, rng *rand.Rand, logger zerolog.Logger) (*Session, error) {
	if a == nil {
		return nil, ErrNilAgent
	}
	if cfg.HumanPlayer < RandomSeat || cfg.HumanPlayer > int(core.Player1) {
		return nil, fmt.Errorf("human player %d: %w", cfg.HumanPlayer, core.ErrInvalidPlayer)
	}
	if cfg.Start != nil {
		if !cfg.Start.IsValid() || rules.IsTerminal(*cfg.Start) {
			return nil, fmt.Errorf("start position %s has no legal moves", *cfg.Start)
		}
	} else if err := cfg.Setup.Validate(); err != nil {
		return nil, fmt.Errorf("invalid setup: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		agent:   a,
		cfg:     cfg,
		scanner: bufio.NewScanner(in),
		out:     out,
		render:  NewRenderer(out),
		rng:     rng,
		bus:     events.NewEventBus(logger),
		human:   core.NoPlayer,
		base:    logger,
		logger:  logger.With().Str("component", "play_session").Logger(),
	}

	s.bus.Subscribe(subscribers.NewLoggerSubscriber("play-logger", logger, zerolog.DebugLevel))
	s.bus.SubscribeFunc(events.TypeMoveApplied, s.narrateMove)
	s.bus.SubscribeFunc(events.TypeGameEnded, s.narrateEnd)
	return s, nil
}

// Run plays a single game to its end. The context is honoured between turns
// and during the think delay; a blocked read is not interrupted.
func (s *Session) Run(ctx context.Context) (Result, error) {
	s.human = core.Player(s.cfg.HumanPlayer)
	if s.cfg.HumanPlayer == RandomSeat {
		s.human = core.Player(s.rng.Intn(2))
	}

	g, err := game.NewEngine(game.GameConfig{
		Setup:       s.cfg.Setup,
		Start:       s.cfg.Start,
		FirstPlayer: core.Player0,
		Rng:         s.rng,
		Logger:      s.base,
		EventBus:    s.bus,
	})
	if err != nil {
		return Result{}, fmt.Errorf("starting game: %w", err)
	}
	result := Result{GameID: g.GameID(), Human: s.human, Winner: core.NoPlayer}

	s.logger.Info().
		Str("game_id", g.GameID()).
		Int("human_player", int(s.human)).
		Str("piles", g.State().String()).
		Msg("Interactive game started")

	for !g.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fmt.Fprint(s.out, s.render.Piles(g.State()))

		var action core.Action
		if g.CurrentPlayer() == s.human {
			fmt.Fprintln(s.out, s.render.Turn("Your Turn"))
			action, err = s.readHumanMove(g.State())
		} else {
			fmt.Fprintln(s.out, s.render.Turn("AI's Turn"))
			if err = s.think(ctx); err == nil {
				action, err = s.agent.ChooseAction(g.State(), false)
			}
		}
		if err != nil {
			return result, err
		}

		if err := g.Move(action); err != nil {
			return result, fmt.Errorf("applying move: %w", err)
		}
	}

	result.Winner = g.Winner()
	result.Turns = g.Turn()
	return result, nil
}

// readHumanMove prompts until the human enters a legal row and count
func (s *Session) readHumanMove(state core.State) (core.Action, error) {
	for {
		row, ok, err := s.readInt("Choose row: ")
		if err != nil {
			return core.Action{}, err
		}
		count := 0
		if ok {
			count, ok, err = s.readInt("Choose Count: ")
			if err != nil {
				return core.Action{}, err
			}
		}

		action := core.Action{Pile: row, Count: count}
		if ok && rules.IsLegal(state, action) {
			return action, nil
		}
		fmt.Fprintln(s.out, s.render.Error("Invalid move, try again."))
	}
}

// readInt prompts for one line; ok is false when it is not an integer
func (s *Session) readInt(prompt string) (int, bool, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return 0, false, fmt.Errorf("reading input: %w", err)
		}
		return 0, false, ErrInputClosed
	}
	n, err := strconv.Atoi(strings.TrimSpace(s.scanner.Text()))
	return n, err == nil, nil
}

func (s *Session) think(ctx context.Context) error {
	if s.cfg.ThinkDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.cfg.ThinkDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Session) narrateMove(event events.Event) {
	e, ok := event.(*events.MoveAppliedEvent)
	if !ok || e.Player == s.human {
		return
	}
	fmt.Fprintln(s.out, s.render.AI(fmt.Sprintf("AI chose to take %d from row %d.", e.Action.Count, e.Action.Pile)))
}

func (s *Session) narrateEnd(event events.Event) {
	e, ok := event.(*events.GameEndedEvent)
	if !ok {
		return
	}
	winner := "AI"
	if e.Winner == s.human {
		winner = "Human"
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.render.Title("GAME OVER"))
	fmt.Fprintln(s.out, s.render.Result("Winner is "+winner))
}
