package setup

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

// Config holds configuration for initial pile generation
type Config struct {
	MinPile int
	MaxPile int
}

// DefaultConfig returns piles drawn uniformly from [1,10]
func DefaultConfig() Config {
	return Config{
		MinPile: 1,
		MaxPile: 10,
	}
}

// Validate checks the pile range
func (c Config) Validate() error {
	if c.MinPile < 1 {
		return fmt.Errorf("min pile must be at least 1, got %d", c.MinPile)
	}
	if c.MaxPile < c.MinPile {
		return fmt.Errorf("max pile %d is below min pile %d", c.MaxPile, c.MinPile)
	}
	return nil
}

// Generator produces starting positions with a deterministic RNG
type Generator struct {
	config Config
	rng    *rand.Rand
}

// NewGenerator creates a new position generator
func NewGenerator(config Config, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Generate draws every pile independently from [MinPile, MaxPile]
func (g *Generator) Generate() core.State {
	var s core.State
	span := g.config.MaxPile - g.config.MinPile + 1
	for i := range s {
		s[i] = g.config.MinPile + g.rng.Intn(span)
	}
	return s
}
