package training

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

// EvalResult counts games of the greedy agent against a random opponent
type EvalResult struct {
	Games  int
	Wins   int
	Losses int
}

// WinRate returns the agent's share of won games
func (r EvalResult) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

// Evaluate plays games with exploration off against an opponent that picks
// uniformly among legal moves. The agent takes the first seat in even games
// and the second seat in odd ones. No values are updated.
func (t *Trainer) Evaluate(ctx context.Context, games int) (EvalResult, error) {
	var result EvalResult

	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("evaluation stopped after %d games: %w", i, err)
		}

		g, err := game.NewEngine(game.GameConfig{
			Setup:       t.setup,
			Start:       t.start,
			FirstPlayer: core.Player0,
			Rng:         t.rng,
			Logger:      t.base,
		})
		if err != nil {
			return result, core.WrapEpisodeError(i+1, "eval setup", err)
		}

		seat := core.Player(i % 2)
		for !g.IsGameOver() {
			var action core.Action
			if g.CurrentPlayer() == seat {
				action, err = t.agent.GreedyAction(g.State())
				if err != nil {
					return result, core.WrapEpisodeError(i+1, "eval choose", err)
				}
			} else {
				var ok bool
				if action, ok = t.opponent(g, t.rng); !ok {
					return result, core.WrapEpisodeError(i+1, "eval opponent", core.ErrGameOver)
				}
			}
			if err := g.Move(action); err != nil {
				return result, core.WrapEpisodeError(i+1, "eval move", err)
			}
		}

		result.Games++
		if g.Winner() == seat {
			result.Wins++
		} else {
			result.Losses++
		}
	}

	t.logger.Info().
		Int("games", result.Games).
		Int("wins", result.Wins).
		Int("losses", result.Losses).
		Float64("win_rate", result.WinRate()).
		Msg("Evaluation against random opponent")
	return result, nil
}
