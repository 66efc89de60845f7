package agent

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

const modelVersion = 1

// ModelInfo is the metadata stored next to the learned values
type ModelInfo struct {
	Episodes int
	SavedAt  time.Time
}

type modelFile struct {
	Version  int       `yaml:"version"`
	Alpha    *float64  `yaml:"alpha"`
	Epsilon  *float64  `yaml:"epsilon"`
	Episodes int       `yaml:"episodes"`
	SavedAt  time.Time `yaml:"saved_at,omitempty"`
	Q        *[]qEntry `yaml:"q"`
}

type qEntry struct {
	State []int   `yaml:"state,flow"`
	Pile  int     `yaml:"pile"`
	Count int     `yaml:"count"`
	Value float64 `yaml:"value"`
}

// MarshalModel encodes the agent's hyperparameters and table as YAML.
// Entries are sorted, so equal agents always encode to equal bytes.
func MarshalModel(a *Agent, info ModelInfo) ([]byte, error) {
	alpha, epsilon := a.alpha, a.epsilon
	entries := a.q.Entries()
	q := make([]qEntry, 0, len(entries))
	for _, e := range entries {
		e := e // per-iteration copy: State[:] below must not alias the loop variable
		q = append(q, qEntry{
			State: e.State[:],
			Pile:  e.Action.Pile,
			Count: e.Action.Count,
			Value: e.Value,
		})
	}

	data, err := yaml.Marshal(&modelFile{
		Version:  modelVersion,
		Alpha:    &alpha,
		Epsilon:  &epsilon,
		Episodes: info.Episodes,
		SavedAt:  info.SavedAt,
		Q:        &q,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding model: %w", err)
	}
	return data, nil
}

// UnmarshalModel decodes a snapshot written by MarshalModel. Options are
// applied after the stored hyperparameters, so they can override them.
// Any defect yields a *CorruptedModelError and no agent.
func UnmarshalModel(data []byte, opts ...Option) (*Agent, ModelInfo, error) {
	var mf modelFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, ModelInfo{}, &CorruptedModelError{Field: "document", Reason: "not valid YAML", Err: err}
	}

	if mf.Version != modelVersion {
		return nil, ModelInfo{}, corrupted("version", fmt.Sprintf("unsupported version %d", mf.Version))
	}
	if mf.Alpha == nil {
		return nil, ModelInfo{}, corrupted("alpha", "missing")
	}
	if mf.Epsilon == nil {
		return nil, ModelInfo{}, corrupted("epsilon", "missing")
	}
	if mf.Q == nil {
		return nil, ModelInfo{}, corrupted("q", "missing")
	}
	if mf.Episodes < 0 {
		return nil, ModelInfo{}, corrupted("episodes", "negative")
	}

	q := NewQTable()
	for i, e := range *mf.Q {
		field := fmt.Sprintf("q[%d]", i)
		if len(e.State) != core.NumPiles {
			return nil, ModelInfo{}, corrupted(field, fmt.Sprintf("state has %d piles", len(e.State)))
		}
		var s core.State
		copy(s[:], e.State)
		if !s.IsValid() {
			return nil, ModelInfo{}, corrupted(field, fmt.Sprintf("state %s has a negative pile", s))
		}
		act := core.Action{Pile: e.Pile, Count: e.Count}
		if err := act.Validate(s); err != nil {
			return nil, ModelInfo{}, &CorruptedModelError{Field: field, Reason: fmt.Sprintf("%s is illegal in %s", act, s), Err: err}
		}
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return nil, ModelInfo{}, corrupted(field, "value is not finite")
		}
		if _, dup := q.Get(s, act); dup {
			return nil, ModelInfo{}, corrupted(field, fmt.Sprintf("duplicate entry for %s in %s", act, s))
		}
		q.Set(s, act, e.Value)
	}

	all := append([]Option{WithAlpha(*mf.Alpha), WithEpsilon(*mf.Epsilon)}, opts...)
	all = append(all, WithQTable(q))
	a, err := New(all...)
	if err != nil {
		return nil, ModelInfo{}, &CorruptedModelError{Field: "hyperparameters", Reason: "out of range", Err: err}
	}

	return a, ModelInfo{Episodes: mf.Episodes, SavedAt: mf.SavedAt}, nil
}

// Save writes the model to path, creating parent directories. The file is
// written to a temporary name first and renamed into place.
func Save(path string, a *Agent, info ModelInfo) error {
	data, err := MarshalModel(a, info)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp model file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing model file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming model file: %w", err)
	}

	a.logger.Info().
		Str("path", path).
		Int("entries", a.q.Len()).
		Int("episodes", info.Episodes).
		Msg("Model saved")
	return nil
}

// Load reads a model written by Save
func Load(path string, opts ...Option) (*Agent, ModelInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ModelInfo{}, fmt.Errorf("reading model: %w", err)
	}

	a, info, err := UnmarshalModel(data, opts...)
	if err != nil {
		var cme *CorruptedModelError
		if errors.As(err, &cme) {
			cme.Path = path
		}
		return nil, ModelInfo{}, err
	}

	a.logger.Info().
		Str("path", path).
		Int("entries", a.q.Len()).
		Int("episodes", info.Episodes).
		Msg("Model loaded")
	return a, info, nil
}
