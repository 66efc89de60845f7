package experience

import "github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"

// RewardConfig holds the reward values handed to the update rule
type RewardConfig struct {
	Win      float64
	Loss     float64
	Continue float64
}

// DefaultRewardConfig returns the default reward configuration
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		Win:      1.0,
		Loss:     -1.0,
		Continue: 0.0,
	}
}

// RewardFor returns the reward for player once the game has reached the given
// winner. NoPlayer means the game is still going.
func (c RewardConfig) RewardFor(player, winner core.Player) float64 {
	switch winner {
	case core.NoPlayer:
		return c.Continue
	case player:
		return c.Win
	default:
		return c.Loss
	}
}
