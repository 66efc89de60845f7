package experience

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/rules"
)

// SimpleCollector keeps the most recent transitions in memory
type SimpleCollector struct {
	buffer   *Buffer
	maxPile  int
	episodes int
	wins     [2]int
	logger   zerolog.Logger
}

// NewSimpleCollector creates a collector that keeps up to maxSize
// experiences. maxPile sizes the action mask stored with each one.
func NewSimpleCollector(maxSize, maxPile int, logger zerolog.Logger) *SimpleCollector {
	logger = logger.With().Str("component", "experience_collector").Logger()
	return &SimpleCollector{
		buffer:  NewBuffer(maxSize, logger),
		maxPile: maxPile,
		logger:  logger,
	}
}

// OnTransition records one applied update
func (c *SimpleCollector) OnTransition(t Transition) {
	exp := &Experience{
		ID:          uuid.New().String(),
		GameID:      t.GameID,
		Episode:     t.Episode,
		Player:      t.Player,
		State:       t.State,
		Action:      t.Action,
		NextState:   t.NextState,
		Reward:      t.Reward,
		Done:        t.Done,
		ActionMask:  rules.GetLegalActionMask(t.State, c.maxPile),
		CollectedAt: time.Now(),
	}
	c.buffer.Add(exp)

	c.logger.Trace().
		Str("experience_id", exp.ID).
		Int("episode", t.Episode).
		Int("player_id", int(t.Player)).
		Float64("reward", t.Reward).
		Bool("done", t.Done).
		Msg("Collected experience")
}

// OnEpisodeEnd counts the finished episode
func (c *SimpleCollector) OnEpisodeEnd(episode int, winner core.Player) {
	c.episodes++
	if winner.IsValid() {
		c.wins[winner]++
	}
	c.logger.Trace().
		Int("episode", episode).
		Int("winner", int(winner)).
		Int("total_experiences", c.buffer.Size()).
		Msg("Episode ended")
}

// GetExperiences returns a copy of all collected experiences, oldest first
func (c *SimpleCollector) GetExperiences() []*Experience {
	return c.buffer.Snapshot()
}

// Episodes returns how many episodes ended while collecting
func (c *SimpleCollector) Episodes() int {
	return c.episodes
}

// Wins returns the number of episodes won by each seat
func (c *SimpleCollector) Wins() [2]int {
	return c.wins
}

// Stats returns the underlying buffer statistics
func (c *SimpleCollector) Stats() BufferStats {
	return c.buffer.Stats()
}
