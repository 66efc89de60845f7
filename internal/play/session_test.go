package play

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/testutil"
)

func newTestSession(t *testing.T, a *agent.Agent, human int, start core.State, input string) (*Session, *bytes.Buffer) {
	t.Helper()
	if a == nil {
		var err error
		a, err = agent.New(agent.WithRand(testutil.NewTestRNG(1)))
		require.NoError(t, err)
	}
	out := &bytes.Buffer{}
	cfg := DefaultConfig()
	cfg.HumanPlayer = human
	cfg.ThinkDelay = 0
	cfg.Start = &start

	s, err := NewSession(a, cfg, strings.NewReader(input), out, testutil.NewTestRNG(3), testutil.TestLogger(t))
	require.NoError(t, err)
	return s, out
}

func TestHumanWins(t *testing.T) {
	s, out := newTestSession(t, nil, 0, testutil.LastObject, "0\n1\n")

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.Player0, result.Human)
	assert.Equal(t, core.Player0, result.Winner)
	assert.True(t, result.HumanWon())
	assert.Equal(t, 1, result.Turns)

	text := out.String()
	assert.Contains(t, text, "rows:\nrow 0: @\nrow 1: \nrow 2: \n")
	assert.Contains(t, text, "Your Turn\nChoose row: Choose Count: ")
	assert.Contains(t, text, "GAME OVER\nWinner is Human\n")
	assert.NotContains(t, text, "\x1b[", "non-terminal output is plain text")
}

func TestAgentMovesFirstAndNarrates(t *testing.T) {
	a, err := agent.New(agent.WithRand(testutil.NewTestRNG(1)))
	require.NoError(t, err)
	// Prefer emptying row 2 from [0,1,1]
	a.QTable().Set(core.State{0, 1, 1}, core.Action{Pile: 2, Count: 1}, 0.9)

	s, out := newTestSession(t, a, 1, core.State{0, 1, 1}, "1\n1\n")

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.Player1, result.Winner)
	text := out.String()
	assert.Contains(t, text, "AI's Turn\nAI chose to take 1 from row 2.\n")
	assert.Contains(t, text, "rows:\nrow 0: \nrow 1: @\nrow 2: \n")
	assert.Contains(t, text, "Winner is Human")
}

func TestAgentWins(t *testing.T) {
	// Human takes one of two singles, the agent takes the other
	s, out := newTestSession(t, nil, 0, testutil.TwoSingles, "0\n1\n")

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.Player1, result.Winner)
	assert.False(t, result.HumanWon())
	assert.Contains(t, out.String(), "AI chose to take 1 from row 1.")
	assert.Contains(t, out.String(), "Winner is AI")
}

func TestInvalidInputIsRetried(t *testing.T) {
	tests := []struct {
		name  string
		input string
		fails int
	}{
		{"non numeric row", "x\n0\n1\n", 1},
		{"non numeric count", "0\nall\n0\n1\n", 1},
		{"row out of range", "3\n1\n0\n1\n", 1},
		{"count too large", "0\n2\n0\n1\n", 1},
		{"empty pile", "1\n1\n0\n1\n", 1},
		{"zero count then negative row", "0\n0\n-1\n1\n0\n1\n", 2},
		{"surrounding whitespace", "  0 \n\t1\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := newTestSession(t, nil, 0, testutil.LastObject, tt.input)

			result, err := s.Run(context.Background())
			require.NoError(t, err)
			assert.True(t, result.HumanWon())
			assert.Equal(t, tt.fails, strings.Count(out.String(), "Invalid move, try again."))
		})
	}
}

func TestInputClosed(t *testing.T) {
	s, _ := newTestSession(t, nil, 0, testutil.ThreeZeroOne, "0\n")

	_, err := s.Run(context.Background())
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestRandomSeatIsDrawnFromRng(t *testing.T) {
	seats := make(map[core.Player]bool)
	for seed := int64(0); seed < 20; seed++ {
		a, err := agent.New(agent.WithRand(testutil.NewTestRNG(1)))
		require.NoError(t, err)
		start := testutil.LastObject
		cfg := Config{HumanPlayer: RandomSeat, Start: &start}
		s, err := NewSession(a, cfg, strings.NewReader("0\n1\n"), &bytes.Buffer{}, testutil.NewTestRNG(seed), testutil.NopLogger())
		require.NoError(t, err)

		result, err := s.Run(context.Background())
		require.NoError(t, err)
		seats[result.Human] = true
	}
	assert.Len(t, seats, 2, "both seats are reachable")
}

func TestThinkDelayHonoursCancellation(t *testing.T) {
	a, err := agent.New()
	require.NoError(t, err)
	start := testutil.ThreeZeroOne
	cfg := Config{HumanPlayer: 1, ThinkDelay: time.Hour, Start: &start}
	s, err := NewSession(a, cfg, strings.NewReader(""), &bytes.Buffer{}, testutil.NewTestRNG(1), testutil.NopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSessionValidation(t *testing.T) {
	a, err := agent.New()
	require.NoError(t, err)
	empty := testutil.EmptyPiles

	_, err = NewSession(nil, DefaultConfig(), strings.NewReader(""), &bytes.Buffer{}, nil, testutil.NopLogger())
	assert.ErrorIs(t, err, ErrNilAgent)

	_, err = NewSession(a, Config{HumanPlayer: 2, Setup: DefaultConfig().Setup}, strings.NewReader(""), &bytes.Buffer{}, nil, testutil.NopLogger())
	assert.ErrorIs(t, err, core.ErrInvalidPlayer)

	_, err = NewSession(a, Config{HumanPlayer: 0, Start: &empty}, strings.NewReader(""), &bytes.Buffer{}, nil, testutil.NopLogger())
	assert.Error(t, err)

	_, err = NewSession(a, Config{HumanPlayer: 0}, strings.NewReader(""), &bytes.Buffer{}, nil, testutil.NopLogger())
	assert.Error(t, err, "zero setup has no valid pile range")
}

func TestRendererPlainOutput(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})

	assert.Equal(t, "\nrows:\nrow 0: @@@\nrow 1: \nrow 2: @\n\n", r.Piles(testutil.ThreeZeroOne))
	assert.Equal(t, "Your Turn", r.Turn("Your Turn"))
	assert.Equal(t, "Winner is AI", r.Result("Winner is AI"))
}
