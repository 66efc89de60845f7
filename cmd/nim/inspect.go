package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the learned values for a position",
	Annotations: map[string]string{
		"model": "model.path",
	},
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("model", "nim_model.yaml", "Model to load")
	inspectCmd.Flags().IntSlice("piles", []int{1, 3, 5}, "Position to inspect, e.g. --piles 3,0,1")
}

func runInspect(cmd *cobra.Command, args []string) error {
	piles, err := cmd.Flags().GetIntSlice("piles")
	if err != nil {
		return err
	}
	if len(piles) != core.NumPiles {
		return fmt.Errorf("--piles needs %d values, got %d", core.NumPiles, len(piles))
	}
	var s core.State
	copy(s[:], piles)
	if !s.IsValid() {
		return fmt.Errorf("position %s has a negative pile", s)
	}

	a, info, err := agent.Load(config.Get().Model.Path, agent.WithLogger(log.Logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "model: %s (%d entries, %d episodes)\n", config.Get().Model.Path, a.QTable().Len(), info.Episodes)
	fmt.Fprint(out, game.RenderPiles(s))

	best, err := a.GreedyAction(s)
	if err != nil {
		fmt.Fprintln(out, "no legal moves: the game is over")
		return nil
	}
	fmt.Fprintf(out, "greedy: %s\n", best)
	for _, av := range a.ActionValues(s) {
		marker := " "
		if av.Action == best {
			marker = "*"
		}
		known := ""
		if !av.Known {
			known = " (unseen)"
		}
		fmt.Fprintf(out, "%s %-22s %+.4f%s\n", marker, av.Action, av.Value, known)
	}
	return nil
}
