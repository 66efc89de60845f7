package experience

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const exportVersion = 1

type exportFile struct {
	Version     int                `yaml:"version"`
	Count       int                `yaml:"count"`
	Experiences []experienceRecord `yaml:"experiences"`
}

type experienceRecord struct {
	ID          string    `yaml:"id"`
	GameID      string    `yaml:"game_id"`
	Episode     int       `yaml:"episode"`
	Player      int       `yaml:"player"`
	State       []int     `yaml:"state,flow"`
	Pile        int       `yaml:"pile"`
	Count       int       `yaml:"count"`
	NextState   []int     `yaml:"next_state,flow"`
	Reward      float64   `yaml:"reward"`
	Done        bool      `yaml:"done"`
	ActionMask  []bool    `yaml:"action_mask,flow"`
	CollectedAt time.Time `yaml:"collected_at"`
}

// MarshalExperiences encodes experiences as YAML, in the order given
func MarshalExperiences(exps []*Experience) ([]byte, error) {
	records := make([]experienceRecord, 0, len(exps))
	for _, exp := range exps {
		records = append(records, experienceRecord{
			ID:          exp.ID,
			GameID:      exp.GameID,
			Episode:     exp.Episode,
			Player:      int(exp.Player),
			State:       exp.State[:],
			Pile:        exp.Action.Pile,
			Count:       exp.Action.Count,
			NextState:   exp.NextState[:],
			Reward:      exp.Reward,
			Done:        exp.Done,
			ActionMask:  exp.ActionMask,
			CollectedAt: exp.CollectedAt,
		})
	}

	data, err := yaml.Marshal(&exportFile{
		Version:     exportVersion,
		Count:       len(records),
		Experiences: records,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding experiences: %w", err)
	}
	return data, nil
}

// SaveExperiences writes experiences to path, creating parent directories
func SaveExperiences(path string, exps []*Experience) error {
	data, err := MarshalExperiences(exps)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating experience directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing experiences: %w", err)
	}
	return nil
}
