package agent

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/testutil"
)

func populatedAgent(t *testing.T) *Agent {
	t.Helper()
	a := newTestAgent(t, WithAlpha(0.3), WithEpsilon(0.05))
	q := a.QTable()
	q.Set(core.State{1, 0, 0}, core.Action{Pile: 0, Count: 1}, 0.5)
	q.Set(core.State{1, 1, 0}, core.Action{Pile: 1, Count: 1}, -1.0/3.0)
	q.Set(core.State{3, 0, 1}, core.Action{Pile: 0, Count: 3}, 0.1+0.2)
	q.Set(core.State{10, 10, 10}, core.Action{Pile: 2, Count: 10}, -0.9999999999999999)
	return a
}

func TestSaveLoadRoundTrip(t *testing.T) {
	original := populatedAgent(t)
	path := filepath.Join(t.TempDir(), "models", "nim.yaml")
	savedAt := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	require.NoError(t, Save(path, original, ModelInfo{Episodes: 1234, SavedAt: savedAt}))

	loaded, info, err := Load(path, WithRand(testutil.NewTestRNG(2)))
	require.NoError(t, err)

	assert.Equal(t, 1234, info.Episodes)
	assert.True(t, savedAt.Equal(info.SavedAt))
	assert.Equal(t, original.Alpha(), loaded.Alpha())
	assert.Equal(t, original.Epsilon(), loaded.Epsilon())
	assert.Equal(t, original.QTable().Entries(), loaded.QTable().Entries(), "values must round-trip exactly")

	for _, s := range []core.State{{1, 0, 0}, {1, 1, 0}, {3, 0, 1}, {10, 10, 10}, {4, 4, 4}} {
		want, err := original.GreedyAction(s)
		require.NoError(t, err)
		got, err := loaded.GreedyAction(s)
		require.NoError(t, err)
		assert.Equal(t, want, got, "greedy action for %s", s)
	}
}

func TestSaveLoadEmptyTable(t *testing.T) {
	a := newTestAgent(t)
	path := filepath.Join(t.TempDir(), "empty.yaml")

	require.NoError(t, Save(path, a, ModelInfo{}))

	loaded, info, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.QTable().Len())
	assert.Equal(t, 0, info.Episodes)
	assert.True(t, info.SavedAt.IsZero())
}

func TestLoadOptionsOverrideStoredHyperparameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nim.yaml")
	require.NoError(t, Save(path, populatedAgent(t), ModelInfo{}))

	loaded, _, err := Load(path, WithEpsilon(0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, loaded.Epsilon())
	assert.Equal(t, 0.3, loaded.Alpha())
}

func TestMarshalModelIsDeterministic(t *testing.T) {
	info := ModelInfo{Episodes: 5, SavedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	first, err := MarshalModel(populatedAgent(t), info)
	require.NoError(t, err)
	second, err := MarshalModel(populatedAgent(t), info)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), "state: [1, 0, 0]")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrCorruptedModel)
}

func TestLoadCorruptedModels(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "not yaml",
			content: "alpha: [0.5\n",
			field:   "document",
		},
		{
			name:    "unknown version",
			content: "version: 7\nalpha: 0.5\nepsilon: 0.1\nq: []\n",
			field:   "version",
		},
		{
			name:    "missing alpha",
			content: "version: 1\nepsilon: 0.1\nq: []\n",
			field:   "alpha",
		},
		{
			name:    "missing epsilon",
			content: "version: 1\nalpha: 0.5\nq: []\n",
			field:   "epsilon",
		},
		{
			name:    "missing table",
			content: "version: 1\nalpha: 0.5\nepsilon: 0.1\n",
			field:   "q",
		},
		{
			name:    "alpha out of range",
			content: "version: 1\nalpha: 0\nepsilon: 0.1\nq: []\n",
			field:   "hyperparameters",
		},
		{
			name:    "negative episodes",
			content: "version: 1\nalpha: 0.5\nepsilon: 0.1\nepisodes: -3\nq: []\n",
			field:   "episodes",
		},
		{
			name:    "short state",
			content: "version: 1\nalpha: 0.5\nepsilon: 0.1\nq:\n" +
				"  - {state: [1, 0], pile: 0, count: 1, value: 0.5}\n",
			field: "q[0]",
		},
		{
			name:    "negative pile",
			content: "version: 1\nalpha: 0.5\nepsilon: 0.1\nq:\n" +
				"  - {state: [1, -1, 0], pile: 0, count: 1, value: 0.5}\n",
			field: "q[0]",
		},
		{
			name:    "illegal action",
			content: "version: 1\nalpha: 0.5\nepsilon: 0.1\nq:\n" +
				"  - {state: [1, 0, 0], pile: 0, count: 1, value: 0.5}\n" +
				"  - {state: [0, 0, 1], pile: 0, count: 1, value: 0.5}\n",
			field: "q[1]",
		},
		{
			name:    "pile out of range",
			content: "version: 1\nalpha: 0.5\nepsilon: 0.1\nq:\n" +
				"  - {state: [1, 0, 0], pile: 3, count: 1, value: 0.5}\n",
			field: "q[0]",
		},
		{
			name:    "non finite value",
			content: "version: 1\nalpha: 0.5\nepsilon: 0.1\nq:\n" +
				"  - {state: [1, 0, 0], pile: 0, count: 1, value: .nan}\n",
			field: "q[0]",
		},
		{
			name:    "duplicate entry",
			content: "version: 1\nalpha: 0.5\nepsilon: 0.1\nq:\n" +
				"  - {state: [1, 0, 0], pile: 0, count: 1, value: 0.5}\n" +
				"  - {state: [1, 0, 0], pile: 0, count: 1, value: 0.7}\n",
			field: "q[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			a, _, err := Load(path)
			assert.Nil(t, a)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCorruptedModel)

			var cme *CorruptedModelError
			require.ErrorAs(t, err, &cme)
			assert.Equal(t, path, cme.Path)
			assert.Equal(t, tt.field, cme.Field)
		})
	}
}

func TestCorruptedModelErrorMessage(t *testing.T) {
	err := &CorruptedModelError{Field: "q[2]", Reason: "value is not finite"}
	assert.Equal(t, "corrupted model <memory>: q[2]: value is not finite", err.Error())

	err.Path = "m.yaml"
	err.Err = core.ErrInvalidCount
	assert.Equal(t, "corrupted model m.yaml: q[2]: value is not finite: invalid number of objects", err.Error())
	assert.ErrorIs(t, err, core.ErrInvalidCount)
}
