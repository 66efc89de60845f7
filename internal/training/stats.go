package training

import (
	"time"

	"github.com/rs/zerolog"
)

// Stats summarizes a training run
type Stats struct {
	Episodes   int
	Moves      int
	Wins       [2]int // Episodes won by each seat
	Updates    int
	QTableSize int
	Duration   time.Duration
}

// AvgMoves returns the mean episode length
func (s Stats) AvgMoves() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Moves) / float64(s.Episodes)
}

// FirstPlayerWinRate returns the share of episodes won by the player who moved first
func (s Stats) FirstPlayerWinRate() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Wins[0]) / float64(s.Episodes)
}

// MarshalZerologObject lets stats be logged with Object("stats", s)
func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("episodes", s.Episodes).
		Int("moves", s.Moves).
		Float64("avg_moves", s.AvgMoves()).
		Int("wins_p0", s.Wins[0]).
		Int("wins_p1", s.Wins[1]).
		Float64("first_player_win_rate", s.FirstPlayerWinRate()).
		Int("updates", s.Updates).
		Int("q_table_size", s.QTableSize).
		Dur("duration", s.Duration)
}

// EpisodeResult describes a single self-play game
type EpisodeResult struct {
	Episode int
	GameID  string
	Winner  int
	Moves   int
	Updates int
}
