package game

import (
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/setup"
)

// MinPile is the smallest starting pile size
func MinPile() int {
	return config.Get().Game.MinPile
}

// MaxPile is the largest starting pile size
func MaxPile() int {
	return config.Get().Game.MaxPile
}

// SetupFromConfig returns the pile generation settings from the loaded config
func SetupFromConfig() setup.Config {
	return setup.Config{
		MinPile: MinPile(),
		MaxPile: MaxPile(),
	}
}
