package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/testutil"
)

func newTestAgent(t *testing.T, opts ...Option) *Agent {
	t.Helper()
	a, err := New(append([]Option{WithRand(testutil.NewTestRNG(1)), WithLogger(testutil.TestLogger(t))}, opts...)...)
	require.NoError(t, err)
	return a
}

func TestNewDefaults(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultAlpha, a.Alpha())
	assert.Equal(t, DefaultEpsilon, a.Epsilon())
	assert.Equal(t, 0, a.QTable().Len())
}

func TestNewRejectsInvalidHyperparameters(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero alpha", WithAlpha(0)},
		{"negative alpha", WithAlpha(-0.1)},
		{"alpha above one", WithAlpha(1.5)},
		{"negative epsilon", WithEpsilon(-0.01)},
		{"epsilon above one", WithEpsilon(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.opt)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, ErrInvalidHyperparameter)
		})
	}
}

func TestValueOfUnseenPairIsZero(t *testing.T) {
	a := newTestAgent(t)

	assert.Equal(t, 0.0, a.Value(testutil.ThreeZeroOne, core.Action{Pile: 0, Count: 2}))
	assert.Equal(t, 0, a.QTable().Len(), "reading a value must not insert it")
}

func TestUpdateFromEmptyStore(t *testing.T) {
	a := newTestAgent(t)
	act := core.Action{Pile: 0, Count: 1}

	got := a.Update(testutil.LastObject, act, testutil.EmptyPiles, 1)

	assert.Equal(t, 0.5, got)
	assert.Equal(t, 0.5, a.Value(testutil.LastObject, act))
	assert.Equal(t, 1, a.QTable().Len())
}

func TestUpdateUsesBestFutureValue(t *testing.T) {
	a := newTestAgent(t)
	old := testutil.Piles(2, 1, 0)
	act := core.Action{Pile: 0, Count: 1}
	next := testutil.TwoSingles

	a.QTable().Set(old, act, 0.2)
	a.QTable().Set(next, core.Action{Pile: 0, Count: 1}, -0.4)
	a.QTable().Set(next, core.Action{Pile: 1, Count: 1}, 0.6)

	got := a.Update(old, act, next, 0)

	// 0.2 + 0.5 * (0 + 0.6 - 0.2)
	assert.InDelta(t, 0.4, got, 1e-12)
}

func TestUpdateIsUndiscounted(t *testing.T) {
	a := newTestAgent(t, WithAlpha(1))
	old := testutil.Piles(1, 1, 0)
	act := core.Action{Pile: 1, Count: 1}
	next := testutil.LastObject
	a.QTable().Set(next, core.Action{Pile: 0, Count: 1}, 0.75)

	got := a.Update(old, act, next, -1)

	assert.Equal(t, -0.25, got)
}

func TestBestFutureValue(t *testing.T) {
	a := newTestAgent(t)
	s := testutil.ThreeZeroOne

	assert.Equal(t, 0.0, a.BestFutureValue(testutil.EmptyPiles))
	assert.Equal(t, 0.0, a.BestFutureValue(s), "no stored values")

	a.QTable().Set(s, core.Action{Pile: 0, Count: 1}, -0.5)
	a.QTable().Set(s, core.Action{Pile: 2, Count: 1}, -0.1)
	assert.Equal(t, 0.0, a.BestFutureValue(s), "negative values are floored at zero")

	a.QTable().Set(s, core.Action{Pile: 0, Count: 3}, 0.3)
	assert.Equal(t, 0.3, a.BestFutureValue(s))
}

func TestActionValues(t *testing.T) {
	a := newTestAgent(t)
	s := testutil.ThreeZeroOne
	a.QTable().Set(s, core.Action{Pile: 0, Count: 2}, 0.25)

	values := a.ActionValues(s)
	require.Len(t, values, 4)
	assert.Equal(t, core.Action{Pile: 0, Count: 1}, values[0].Action)
	assert.False(t, values[0].Known)
	assert.Equal(t, ActionValue{Action: core.Action{Pile: 0, Count: 2}, Value: 0.25, Known: true}, values[1])
	assert.Equal(t, core.Action{Pile: 2, Count: 1}, values[3].Action)

	assert.Empty(t, a.ActionValues(testutil.EmptyPiles))
}

func TestQTableEntriesSorted(t *testing.T) {
	q := NewQTable()
	q.Set(core.State{2, 0, 0}, core.Action{Pile: 0, Count: 1}, 1)
	q.Set(core.State{1, 1, 0}, core.Action{Pile: 1, Count: 1}, 2)
	q.Set(core.State{1, 1, 0}, core.Action{Pile: 0, Count: 1}, 3)
	q.Set(core.State{0, 0, 3}, core.Action{Pile: 2, Count: 2}, 4)

	entries := q.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, 4.0, entries[0].Value)
	assert.Equal(t, 3.0, entries[1].Value)
	assert.Equal(t, 2.0, entries[2].Value)
	assert.Equal(t, 1.0, entries[3].Value)

	v, ok := q.Get(core.State{9, 9, 9}, core.Action{Pile: 0, Count: 1})
	assert.False(t, ok)
	assert.Equal(t, 0.0, v)
}
