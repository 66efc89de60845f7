package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/play"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game against a trained agent",
	Annotations: map[string]string{
		"model": "model.path",
		"human": "play.human_player",
		"delay": "play.think_delay_ms",
	},
	RunE: runPlay,
}

func init() {
	playCmd.Flags().String("model", "nim_model.yaml", "Model to load")
	playCmd.Flags().Int("human", -1, "Your seat: 0 moves first, 1 moves second, -1 random")
	playCmd.Flags().Int("delay", 1000, "Milliseconds the agent waits before moving")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	rng, _ := newRand(cfg.Training.Seed)

	a, info, err := agent.Load(cfg.Model.Path, agent.WithRand(rng), agent.WithLogger(log.Logger))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("no model at %s, run \"nim train\" first", cfg.Model.Path)
	case errors.Is(err, agent.ErrCorruptedModel):
		return fmt.Errorf("refusing to play with a corrupted model: %w", err)
	case err != nil:
		return err
	}
	log.Debug().Int("episodes", info.Episodes).Int("entries", a.QTable().Len()).Msg("Agent ready")

	session, err := play.NewSession(a, play.Config{
		HumanPlayer: cfg.Play.HumanPlayer,
		ThinkDelay:  time.Duration(cfg.Play.ThinkDelayMs) * time.Millisecond,
		Setup:       game.SetupFromConfig(),
	}, cmd.InOrStdin(), cmd.OutOrStdout(), rng, log.Logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	_, err = session.Run(ctx)
	return err
}
