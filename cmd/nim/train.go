package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the agent by self-play and save the learned table",
	Long: `Plays the agent against itself for the configured number of episodes,
then writes the Q-table to the model path. An interrupt stops training
after the current episode and still saves what was learned.

With --record the applied updates are kept in memory, and --experiences
writes them to a YAML file once training stops.`,
	Annotations: map[string]string{
		"episodes":    "training.episodes",
		"seed":        "training.seed",
		"model":       "model.path",
		"record":      "training.record_experiences",
		"experiences": "training.experiences_path",
	},
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().Int("episodes", 10000, "Number of self-play episodes")
	trainCmd.Flags().Int64("seed", 0, "Random seed (0 seeds from the clock)")
	trainCmd.Flags().String("model", "nim_model.yaml", "Where to save the model")
	trainCmd.Flags().Int("record", 0, "Keep up to this many applied updates in memory (0 disables)")
	trainCmd.Flags().String("experiences", "", "Write recorded updates to this YAML file")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	rng, seed := newRand(cfg.Training.Seed)

	// Pick up log level changes while a long run is going
	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Config change rejected")
				return
			}
			setupLogging(config.Get().Logging)
			log.Info().Str("level", config.Get().Logging.Level).Msg("Config reloaded")
		})
	}

	a, err := agent.New(
		agent.WithAlpha(cfg.Agent.Alpha),
		agent.WithEpsilon(cfg.Agent.Epsilon),
		agent.WithRand(rng),
		agent.WithLogger(log.Logger),
	)
	if err != nil {
		return err
	}

	opts := []training.Option{
		training.WithSetup(game.SetupFromConfig()),
		training.WithRand(rng),
		training.WithLogEvery(cfg.Training.LogEvery),
		training.WithLogger(log.Logger),
	}
	var collector *experience.SimpleCollector
	if cfg.Training.RecordExperiences > 0 {
		collector = experience.NewSimpleCollector(cfg.Training.RecordExperiences, game.MaxPile(), log.Logger)
		opts = append(opts, training.WithCollector(collector))
	}

	trainer, err := training.NewTrainer(a, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int64("seed", seed).
		Str("model", cfg.Model.Path).
		Msg("Training begun")

	trained, stats, err := trainer.Train(ctx, cfg.Training.Episodes)
	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return fmt.Errorf("training failed: %w", err)
	}

	if err := agent.Save(cfg.Model.Path, trained, agent.ModelInfo{
		Episodes: stats.Episodes,
		SavedAt:  time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}

	if collector != nil {
		bs := collector.Stats()
		wins := collector.Wins()
		log.Info().
			Int("kept", bs.CurrentSize).
			Int64("recorded", bs.TotalAdded).
			Int64("dropped", bs.TotalDropped).
			Int("episodes", collector.Episodes()).
			Int("wins_p0", wins[0]).
			Int("wins_p1", wins[1]).
			Msg("Experience collection summary")

		if path := cfg.Training.ExperiencesPath; path != "" {
			if err := experience.SaveExperiences(path, collector.GetExperiences()); err != nil {
				return fmt.Errorf("saving experiences: %w", err)
			}
			log.Info().Str("path", path).Int("count", bs.CurrentSize).Msg("Experiences saved")
		}
	}

	if interrupted {
		log.Warn().Int("episodes", stats.Episodes).Msg("Training interrupted; partial model saved")
		return nil
	}
	log.Info().Msg("Done training")

	if cfg.Training.EvalGames > 0 {
		if _, err := trainer.Evaluate(ctx, cfg.Training.EvalGames); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("evaluation failed: %w", err)
		}
	}
	return nil
}
