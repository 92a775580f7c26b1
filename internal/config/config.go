// Package config loads server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Battle  BattleConfig  `mapstructure:"battle"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BattleConfig configures battle simulation.
type BattleConfig struct {
	// Seed drives the battle's deterministic random generator. Zero picks
	// a seed from the clock.
	Seed uint64 `mapstructure:"seed"`
	// DeckFile is the path to the YAML deck list file.
	DeckFile string `mapstructure:"deck_file"`
	// PlayerOneDeck and PlayerTwoDeck name decks within the deck file.
	// Empty selects the built-in default deck.
	PlayerOneDeck string `mapstructure:"player_one_deck"`
	PlayerTwoDeck string `mapstructure:"player_two_deck"`
	// MaxActions bounds automated playouts.
	MaxActions int `mapstructure:"max_actions"`
	// RecordAnimations enables the animation step recorder.
	RecordAnimations bool `mapstructure:"record_animations"`
	// TraceEvents bounds the in-memory trace buffer.
	TraceEvents int `mapstructure:"trace_events"`
	// ReplayDir, when set, records the battle as a seed-plus-action log
	// saved under this directory.
	ReplayDir string `mapstructure:"replay_dir"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given path. A missing file is not an
// error; defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("battle.seed", 0)
	v.SetDefault("battle.deck_file", "")
	v.SetDefault("battle.player_one_deck", "")
	v.SetDefault("battle.player_two_deck", "")
	v.SetDefault("battle.max_actions", 2000)
	v.SetDefault("battle.record_animations", true)
	v.SetDefault("battle.trace_events", 256)
	v.SetDefault("battle.replay_dir", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("BATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
