package agent

import (
	"fmt"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/rules"
)

// GreedyAction returns the legal action with the highest value. Ties go to the
// action that comes first in rules.LegalActions order.
func (a *Agent) GreedyAction(s core.State) (core.Action, error) {
	actions := rules.LegalActions(s)
	if len(actions) == 0 {
		return core.Action{}, fmt.Errorf("state %s: %w", s, ErrNoLegalActions)
	}
	return a.greedy(s, actions), nil
}

// ChooseAction picks an action for s. Without explore it is GreedyAction.
// With explore a uniformly random legal action replaces the greedy one with
// probability epsilon; when epsilon is 0 no randomness is drawn.
func (a *Agent) ChooseAction(s core.State, explore bool) (core.Action, error) {
	actions := rules.LegalActions(s)
	if len(actions) == 0 {
		return core.Action{}, fmt.Errorf("state %s: %w", s, ErrNoLegalActions)
	}

	if explore && a.epsilon > 0 && a.rng.Float64() < a.epsilon {
		return actions[a.rng.Intn(len(actions))], nil
	}
	return a.greedy(s, actions), nil
}

func (a *Agent) greedy(s core.State, actions []core.Action) core.Action {
	best := actions[0]
	bestValue := a.Value(s, best)
	for _, act := range actions[1:] {
		if v := a.Value(s, act); v > bestValue {
			best, bestValue = act, v
		}
	}
	return best
}
