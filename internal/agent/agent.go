package agent

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/rules"
)

const (
	DefaultAlpha   = 0.5
	DefaultEpsilon = 0.1
)

// Agent is a tabular Q-learning player. It is not safe for concurrent use.
type Agent struct {
	q       *QTable
	alpha   float64
	epsilon float64
	rng     *rand.Rand
	logger  zerolog.Logger
}

type Option func(a *Agent)

// WithAlpha sets the learning rate
func WithAlpha(alpha float64) Option {
	return func(a *Agent) {
		a.alpha = alpha
	}
}

// WithEpsilon sets the exploration rate
func WithEpsilon(epsilon float64) Option {
	return func(a *Agent) {
		a.epsilon = epsilon
	}
}

// WithRand sets the source of exploration randomness
func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger.With().Str("component", "agent").Logger()
	}
}

// WithQTable starts the agent from existing values instead of an empty table
func WithQTable(q *QTable) Option {
	return func(a *Agent) {
		if q != nil {
			a.q = q
		}
	}
}

// New creates an agent with an empty table unless WithQTable is given
func New(opts ...Option) (*Agent, error) {
	a := &Agent{ // Default values
		q:       NewQTable(),
		alpha:   DefaultAlpha,
		epsilon: DefaultEpsilon,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if !(a.alpha > 0 && a.alpha <= 1) {
		return nil, fmt.Errorf("alpha %v outside (0, 1]: %w", a.alpha, ErrInvalidHyperparameter)
	}
	if !(a.epsilon >= 0 && a.epsilon <= 1) {
		return nil, fmt.Errorf("epsilon %v outside [0, 1]: %w", a.epsilon, ErrInvalidHyperparameter)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a, nil
}

func (a *Agent) Alpha() float64   { return a.alpha }
func (a *Agent) Epsilon() float64 { return a.epsilon }
func (a *Agent) QTable() *QTable  { return a.q }

// Value returns the learned value of taking the action in the state, or 0
// for a pair that was never updated
func (a *Agent) Value(s core.State, act core.Action) float64 {
	v, _ := a.q.Get(s, act)
	return v
}

// BestFutureValue returns the largest learned value over the legal actions of
// s, floored at 0. A terminal state therefore has a future value of 0.
func (a *Agent) BestFutureValue(s core.State) float64 {
	best := 0.0
	for _, act := range rules.LegalActions(s) {
		if v := a.Value(s, act); v > best {
			best = v
		}
	}
	return best
}

// Update applies one undiscounted Q-learning step to the pair (old, act)
// after observing next and reward, and returns the new value
func (a *Agent) Update(old core.State, act core.Action, next core.State, reward float64) float64 {
	prev := a.Value(old, act)
	future := a.BestFutureValue(next)
	updated := prev + a.alpha*(reward+future-prev)
	a.q.Set(old, act, updated)

	a.logger.Trace().
		Str("state", old.String()).
		Str("action", act.String()).
		Float64("reward", reward).
		Float64("old_value", prev).
		Float64("new_value", updated).
		Msg("Q-value updated")

	return updated
}

// ActionValue pairs a legal action with its learned value
type ActionValue struct {
	Action core.Action
	Value  float64
	Known  bool
}

// ActionValues lists every legal action of s with its value, in
// rules.LegalActions order
func (a *Agent) ActionValues(s core.State) []ActionValue {
	actions := rules.LegalActions(s)
	out := make([]ActionValue, 0, len(actions))
	for _, act := range actions {
		v, ok := a.q.Get(s, act)
		out = append(out, ActionValue{Action: act, Value: v, Known: ok})
	}
	return out
}
