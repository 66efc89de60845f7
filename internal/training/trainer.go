package training

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/rules"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/setup"
)

var ErrNilAgent = errors.New("trainer needs an agent")

// learner is the part of the agent the loop drives
type learner interface {
	ChooseAction(s core.State, explore bool) (core.Action, error)
	Update(old core.State, a core.Action, next core.State, reward float64) float64
}

// opponent picks the evaluation opponent's move; false means it has none
type opponent func(g *game.Engine, rng *rand.Rand) (core.Action, bool)

// Trainer runs self-play episodes against a single agent that plays both seats
type Trainer struct {
	agent     *agent.Agent
	learner   learner
	opponent  opponent
	setup     setup.Config
	start     *core.State
	rewards   experience.RewardConfig
	rng       *rand.Rand
	collector experience.Collector
	eventBus  events.Publisher
	logEvery  int
	base      zerolog.Logger
	logger    zerolog.Logger

	stats Stats
}

type Option func(t *Trainer)

// WithSetup sets the range starting piles are drawn from
func WithSetup(cfg setup.Config) Option {
	return func(t *Trainer) {
		t.setup = cfg
	}
}

// WithStartPosition plays every episode from the same position
func WithStartPosition(s core.State) Option {
	return func(t *Trainer) {
		t.start = &s
	}
}

func WithRewards(r experience.RewardConfig) Option {
	return func(t *Trainer) {
		t.rewards = r
	}
}

// WithRand sets the source used for starting positions
func WithRand(rng *rand.Rand) Option {
	return func(t *Trainer) {
		if rng != nil {
			t.rng = rng
		}
	}
}

// WithCollector records every applied update
func WithCollector(c experience.Collector) Option {
	return func(t *Trainer) {
		t.collector = c
	}
}

// WithEventBus publishes game events for every episode
func WithEventBus(bus events.Publisher) Option {
	return func(t *Trainer) {
		t.eventBus = bus
	}
}

// WithLogEvery logs progress every n episodes; 0 disables progress logs
func WithLogEvery(n int) Option {
	return func(t *Trainer) {
		if n >= 0 {
			t.logEvery = n
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(t *Trainer) {
		t.base = logger
		t.logger = logger.With().Str("component", "trainer").Logger()
	}
}

// NewTrainer creates a trainer for a
func NewTrainer(a *agent.Agent, opts ...Option) (*Trainer, error) {
	if a == nil {
		return nil, ErrNilAgent
	}
	t := &Trainer{ // Default values
		agent:    a,
		learner:  a,
		opponent: game.RandomAction,
		setup:    setup.DefaultConfig(),
		rewards:  experience.DefaultRewardConfig(),
		logEvery: 1000,
		base:     zerolog.Nop(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.start != nil {
		if !t.start.IsValid() || rules.IsTerminal(*t.start) {
			return nil, fmt.Errorf("start position %s has no legal moves", *t.start)
		}
	} else if err := t.setup.Validate(); err != nil {
		return nil, fmt.Errorf("invalid setup: %w", err)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return t, nil
}

// Stats returns the totals accumulated so far
func (t *Trainer) Stats() Stats {
	s := t.stats
	s.QTableSize = t.agent.QTable().Len()
	return s
}

// Train plays n episodes and returns the trained agent. Cancellation is
// checked between episodes; an episode in progress always finishes. An
// illegal move aborts the run.
func (t *Trainer) Train(ctx context.Context, n int) (*agent.Agent, Stats, error) {
	began := time.Now()
	t.logger.Info().
		Int("episodes", n).
		Float64("alpha", t.agent.Alpha()).
		Float64("epsilon", t.agent.Epsilon()).
		Msg("Starting self-play training")

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			t.stats.Duration += time.Since(began)
			t.logger.Warn().Int("completed", i).Msg("Training interrupted")
			return t.agent, t.Stats(), fmt.Errorf("training stopped after %d episodes: %w", i, err)
		}

		if _, err := t.RunEpisode(t.stats.Episodes + 1); err != nil {
			t.stats.Duration += time.Since(began)
			return t.agent, t.Stats(), err
		}

		if t.logEvery > 0 && t.stats.Episodes%t.logEvery == 0 {
			t.logger.Info().Object("stats", t.Stats()).Msg("Training progress")
		}
	}

	t.stats.Duration += time.Since(began)
	stats := t.Stats()
	t.logger.Info().Object("stats", stats).Msg("Training complete")
	return t.agent, stats, nil
}

// RunEpisode plays one self-play game and applies its updates. Each player's
// decision stays pending until the opponent replies; it is then credited with
// the continue reward, or with the loss reward if the reply won the game.
func (t *Trainer) RunEpisode(episode int) (EpisodeResult, error) {
	g, err := game.NewEngine(game.GameConfig{
		Setup:       t.setup,
		Start:       t.start,
		FirstPlayer: core.Player0,
		Rng:         t.rng,
		Logger:      t.base,
		EventBus:    t.eventBus,
	})
	if err != nil {
		return EpisodeResult{}, core.WrapEpisodeError(episode, "setup", err)
	}

	result := EpisodeResult{Episode: episode, GameID: g.GameID(), Winner: int(core.NoPlayer)}
	var pending experience.PendingTracker

	for !g.IsGameOver() {
		state := g.State()
		mover := g.CurrentPlayer()

		action, err := t.learner.ChooseAction(state, true)
		if err != nil {
			return result, core.WrapEpisodeError(episode, "choose", err)
		}
		pending.Remember(mover, state, action)

		if err := g.Move(action); err != nil {
			return result, core.WrapEpisodeError(episode, "move", err)
		}
		result.Moves++

		if g.IsGameOver() {
			t.credit(g, episode, mover, experience.Pending{State: state, Action: action})
			result.Updates++
			if p, ok := pending.Get(core.OtherPlayer(mover)); ok {
				t.credit(g, episode, core.OtherPlayer(mover), p)
				result.Updates++
			}
			break
		}

		if p, ok := pending.Get(g.CurrentPlayer()); ok {
			t.credit(g, episode, g.CurrentPlayer(), p)
			result.Updates++
		}
	}

	result.Winner = int(g.Winner())
	t.stats.Episodes++
	t.stats.Moves += result.Moves
	t.stats.Updates += result.Updates
	if w := g.Winner(); w.IsValid() {
		t.stats.Wins[w]++
	}
	if t.collector != nil {
		t.collector.OnEpisodeEnd(episode, g.Winner())
	}

	t.logger.Debug().
		Int("episode", episode).
		Int("winner", result.Winner).
		Int("moves", result.Moves).
		Msg("Episode finished")
	return result, nil
}

// credit applies the update for player's pending decision against the
// position the game has just reached
func (t *Trainer) credit(g *game.Engine, episode int, player core.Player, p experience.Pending) {
	next := g.State()
	reward := t.rewards.RewardFor(player, g.Winner())
	done := g.IsGameOver()

	t.learner.Update(p.State, p.Action, next, reward)
	if t.collector == nil {
		return
	}
	t.collector.OnTransition(experience.Transition{
		GameID:    g.GameID(),
		Episode:   episode,
		Player:    player,
		State:     p.State,
		Action:    p.Action,
		NextState: next,
		Reward:    reward,
		Done:      done,
	})
}
