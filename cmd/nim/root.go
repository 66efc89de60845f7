package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/config"
)

var (
	configPath string
	envName    string
)

var rootCmd = &cobra.Command{
	Use:   "nim",
	Short: "Three-pile Nim with a self-play Q-learning agent",
	Long: `Train a tabular Q-learning agent by self-play, inspect what it learned,
and play against it on the console.

The player who takes the last object wins.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&envName, "env", os.Getenv("APP_ENV"), "Environment overlay (loads config.<env>.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(trainCmd, playCmd, inspectCmd)
}

// loadConfig reads file, environment and flags, in increasing precedence.
// Each subcommand maps its flag names to config keys through Annotations.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.Init(configPath); err != nil {
		return err
	}
	if err := config.LoadEnvironmentConfig(envName); err != nil {
		return err
	}

	flags := map[string]*pflag.Flag{
		"logging.level": cmd.Flag("log-level"),
	}
	for name, key := range cmd.Annotations {
		flags[key] = cmd.Flag(name)
	}
	if err := config.BindFlags(flags); err != nil {
		return err
	}

	setupLogging(config.Get().Logging)
	log.Debug().
		Str("config_file", config.ConfigFilePath()).
		Str("env", envName).
		Msg("Configuration loaded")
	return nil
}

func setupLogging(cfg config.LoggingConfig) {
	logLevel, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Logs go to stderr so they never interleave with the game on stdout
	if cfg.Format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}

// newRand returns a generator for seed, or a clock-seeded one when seed is 0
func newRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
