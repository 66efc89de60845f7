package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Agent    AgentConfig    `mapstructure:"agent"`
	Training TrainingConfig `mapstructure:"training"`
	Model    ModelConfig    `mapstructure:"model"`
	Play     PlayConfig     `mapstructure:"play"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GameConfig holds starting position settings
type GameConfig struct {
	MinPile int `mapstructure:"min_pile"`
	MaxPile int `mapstructure:"max_pile"`
}

// AgentConfig holds the Q-learning hyperparameters
type AgentConfig struct {
	Alpha   float64 `mapstructure:"alpha"`
	Epsilon float64 `mapstructure:"epsilon"`
}

// TrainingConfig holds self-play settings
type TrainingConfig struct {
	Episodes int   `mapstructure:"episodes"`
	Seed     int64 `mapstructure:"seed"` // 0 means seed from the clock
	LogEvery int   `mapstructure:"log_every"`
	// RecordExperiences caps how many applied updates are kept in memory; 0 disables recording
	RecordExperiences int `mapstructure:"record_experiences"`
	// ExperiencesPath is where recorded experiences are written after training; empty skips the export
	ExperiencesPath string `mapstructure:"experiences_path"`
	EvalGames       int    `mapstructure:"eval_games"`
}

// ModelConfig holds where the learned table is stored
type ModelConfig struct {
	Path string `mapstructure:"path"`
}

// PlayConfig holds interactive session settings
type PlayConfig struct {
	HumanPlayer  int `mapstructure:"human_player"` // -1 picks a random seat
	ThinkDelayMs int `mapstructure:"think_delay_ms"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper

	// overlay holds the merged environment file, re-applied after a reload
	overlay map[string]interface{}
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.min_pile", 1)
	v.SetDefault("game.max_pile", 10)

	v.SetDefault("agent.alpha", 0.5)
	v.SetDefault("agent.epsilon", 0.1)

	v.SetDefault("training.episodes", 10000)
	v.SetDefault("training.seed", 0)
	v.SetDefault("training.log_every", 1000)
	v.SetDefault("training.record_experiences", 0)
	v.SetDefault("training.experiences_path", "")
	v.SetDefault("training.eval_games", 1000)

	v.SetDefault("model.path", "nim_model.yaml")

	v.SetDefault("play.human_player", -1)
	v.SetDefault("play.think_delay_ms", 1000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	overlay = nil

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/nim-rl")
	}

	v.SetEnvPrefix("NIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// isNotFound reports a missing config file, which means "use defaults"
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig loads environment-specific config overlay. The
// overlay is read through its own viper instance, so ConfigFilePath keeps
// naming the main file and WatchConfig keeps watching it.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	ov := viper.New()
	ov.SetConfigFile(envFile)
	if err := ov.ReadInConfig(); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("error reading environment config %s: %w", envFile, err)
	}

	overlay = ov.AllSettings()
	return applyOverlay()
}

// applyOverlay merges the environment overlay, if any, over the values read
// from the main file and refreshes the global config. The previous config
// stays in place when the result is invalid.
func applyOverlay() error {
	if overlay != nil {
		if err := v.MergeConfigMap(overlay); err != nil {
			return fmt.Errorf("error merging environment config: %w", err)
		}
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return err
	}
	cfg = next
	return nil
}

// BindFlags binds command line flags to config keys, so a flag that was set
// overrides the file and environment. Flags that were not set keep the defaults.
func BindFlags(flags map[string]*pflag.Flag) error {
	for key, flag := range flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s to %s: %w", flag.Name, key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return Validate(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the main config file. Viper re-reads
// the file before the callback runs; the environment overlay is merged again
// on top. onChange receives the error when the new values are rejected.
func WatchConfig(onChange func(err error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		err := applyOverlay()
		if onChange != nil {
			onChange(err)
		}
	})
	v.WatchConfig()
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.MinPile < 1 {
		return fmt.Errorf("game.min_pile must be at least 1")
	}
	if c.Game.MaxPile < c.Game.MinPile {
		return fmt.Errorf("game.max_pile must not be below game.min_pile")
	}

	if c.Agent.Alpha <= 0 || c.Agent.Alpha > 1 {
		return fmt.Errorf("agent.alpha must be in (0, 1]")
	}
	if c.Agent.Epsilon < 0 || c.Agent.Epsilon > 1 {
		return fmt.Errorf("agent.epsilon must be between 0 and 1")
	}

	if c.Training.Episodes < 0 {
		return fmt.Errorf("training.episodes must be non-negative")
	}
	if c.Training.LogEvery < 0 {
		return fmt.Errorf("training.log_every must be non-negative")
	}
	if c.Training.RecordExperiences < 0 {
		return fmt.Errorf("training.record_experiences must be non-negative")
	}
	if c.Training.ExperiencesPath != "" && c.Training.RecordExperiences == 0 {
		return fmt.Errorf("training.experiences_path needs training.record_experiences above 0")
	}
	if c.Training.EvalGames < 0 {
		return fmt.Errorf("training.eval_games must be non-negative")
	}

	if c.Model.Path == "" {
		return fmt.Errorf("model.path must not be empty")
	}

	if c.Play.HumanPlayer < -1 || c.Play.HumanPlayer > 1 {
		return fmt.Errorf("play.human_player must be -1, 0 or 1")
	}
	if c.Play.ThinkDelayMs < 0 {
		return fmt.Errorf("play.think_delay_ms must be non-negative")
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level %q is not one of trace, debug, info, warn, error", c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
