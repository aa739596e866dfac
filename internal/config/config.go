// Package config provides Viper-based configuration loading for the Delver
// game server, including every gameplay tunable the simulation exposes.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP/WebSocket listener settings.
type ServerConfig struct {
	// Host is the bind address for the HTTP listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the HTTP listener.
	Port int `mapstructure:"port"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GridConfig holds the dungeon grid dimensions.
type GridConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// RoomsConfig bounds room placement during dungeon generation.
type RoomsConfig struct {
	// Max is the number of placement attempts per level.
	Max int `mapstructure:"max"`
	// MinSize and MaxSize bound the randomized room width and height.
	MinSize int `mapstructure:"min_size"`
	MaxSize int `mapstructure:"max_size"`
}

// VisionConfig holds the field-of-view radii.
type VisionConfig struct {
	// PlayerRadius is the player's sight radius.
	PlayerRadius int `mapstructure:"player_radius"`
	// EnemyRadius is the default enemy sight radius.
	EnemyRadius int `mapstructure:"enemy_radius"`
	// EnemyRadiusVsRogue is the reduced enemy sight radius used when the
	// tracked player is a Rogue.
	EnemyRadiusVsRogue int `mapstructure:"enemy_radius_vs_rogue"`
}

// CombatConfig holds damage-roll tunables.
type CombatConfig struct {
	// Variance is the damage variance fraction applied around the base roll.
	Variance float64 `mapstructure:"variance"`
	// BackstabMultiplier is applied to the rolled damage on a backstab.
	BackstabMultiplier float64 `mapstructure:"backstab_multiplier"`
	// DifficultyPerDepth scales enemy stats: 1 + (depth-1) * DifficultyPerDepth.
	DifficultyPerDepth float64 `mapstructure:"difficulty_per_depth"`
}

// AIConfig holds enemy behavior tunables.
type AIConfig struct {
	// SearchTurnsMax is the number of search turns before an enemy gives up
	// and returns to patrol.
	SearchTurnsMax int `mapstructure:"search_turns_max"`
}

// SpawnConfig holds entity placement tunables.
type SpawnConfig struct {
	// MinPlayerDistance is the minimum Manhattan distance from the player
	// for spawned enemies and items.
	MinPlayerDistance int `mapstructure:"min_player_distance"`
	// MaxAttempts bounds position sampling before the unchecked fallback.
	MaxAttempts int `mapstructure:"max_attempts"`
	// ItemsPerLevel is the number of items placed on each level.
	ItemsPerLevel int `mapstructure:"items_per_level"`
}

// GameConfig holds all simulation tunables.
type GameConfig struct {
	// Seed drives the simulation RNG; 0 selects a crypto-derived seed.
	Seed   int64        `mapstructure:"seed"`
	Grid   GridConfig   `mapstructure:"grid"`
	Rooms  RoomsConfig  `mapstructure:"rooms"`
	Vision VisionConfig `mapstructure:"vision"`
	Combat CombatConfig `mapstructure:"combat"`
	AI     AIConfig     `mapstructure:"ai"`
	Spawn  SpawnConfig  `mapstructure:"spawn"`
	// MaxDepth is the dungeon level at which descending the stairs wins the game.
	MaxDepth int `mapstructure:"max_depth"`
	// Biomes are the cosmetic tags cycled through every 5 levels.
	Biomes []string `mapstructure:"biomes"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", s.Port)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string

	if g.Grid.Width < 10 || g.Grid.Height < 10 {
		errs = append(errs, fmt.Sprintf("game.grid dimensions must be >= 10x10, got %dx%d", g.Grid.Width, g.Grid.Height))
	}
	if g.Rooms.Max < 1 {
		errs = append(errs, fmt.Sprintf("game.rooms.max must be >= 1, got %d", g.Rooms.Max))
	}
	if g.Rooms.MinSize < 3 {
		errs = append(errs, fmt.Sprintf("game.rooms.min_size must be >= 3, got %d", g.Rooms.MinSize))
	}
	if g.Rooms.MinSize > g.Rooms.MaxSize {
		errs = append(errs, fmt.Sprintf("game.rooms.min_size (%d) must not exceed max_size (%d)", g.Rooms.MinSize, g.Rooms.MaxSize))
	}
	if g.Rooms.MaxSize+2 > g.Grid.Width || g.Rooms.MaxSize+2 > g.Grid.Height {
		errs = append(errs, fmt.Sprintf("game.rooms.max_size (%d) must fit inside the grid with a 1-tile border", g.Rooms.MaxSize))
	}
	if g.Vision.PlayerRadius < 1 || g.Vision.EnemyRadius < 1 || g.Vision.EnemyRadiusVsRogue < 1 {
		errs = append(errs, "game.vision radii must all be >= 1")
	}
	if g.Combat.Variance < 0 || g.Combat.Variance >= 1 {
		errs = append(errs, fmt.Sprintf("game.combat.variance must be in [0, 1), got %g", g.Combat.Variance))
	}
	if g.Combat.BackstabMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("game.combat.backstab_multiplier must be >= 1, got %g", g.Combat.BackstabMultiplier))
	}
	if g.Combat.DifficultyPerDepth < 0 {
		errs = append(errs, fmt.Sprintf("game.combat.difficulty_per_depth must be >= 0, got %g", g.Combat.DifficultyPerDepth))
	}
	if g.AI.SearchTurnsMax < 1 {
		errs = append(errs, fmt.Sprintf("game.ai.search_turns_max must be >= 1, got %d", g.AI.SearchTurnsMax))
	}
	if g.Spawn.MinPlayerDistance < 0 {
		errs = append(errs, fmt.Sprintf("game.spawn.min_player_distance must be >= 0, got %d", g.Spawn.MinPlayerDistance))
	}
	if g.Spawn.MaxAttempts < 1 {
		errs = append(errs, fmt.Sprintf("game.spawn.max_attempts must be >= 1, got %d", g.Spawn.MaxAttempts))
	}
	if g.Spawn.ItemsPerLevel < 0 {
		errs = append(errs, fmt.Sprintf("game.spawn.items_per_level must be >= 0, got %d", g.Spawn.ItemsPerLevel))
	}
	if g.MaxDepth < 1 {
		errs = append(errs, fmt.Sprintf("game.max_depth must be >= 1, got %d", g.MaxDepth))
	}
	if len(g.Biomes) == 0 {
		errs = append(errs, "game.biomes must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DELVER_ prefix
	v.SetEnvPrefix("DELVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the built-in default configuration, used by tests and as the
// baseline for Load.
//
// Postcondition: Default().Validate() == nil.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshal of in-memory defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.grid.width", 40)
	v.SetDefault("game.grid.height", 30)
	v.SetDefault("game.rooms.max", 8)
	v.SetDefault("game.rooms.min_size", 4)
	v.SetDefault("game.rooms.max_size", 8)
	v.SetDefault("game.vision.player_radius", 8)
	v.SetDefault("game.vision.enemy_radius", 6)
	v.SetDefault("game.vision.enemy_radius_vs_rogue", 3)
	v.SetDefault("game.combat.variance", 0.2)
	v.SetDefault("game.combat.backstab_multiplier", 2.0)
	v.SetDefault("game.combat.difficulty_per_depth", 0.15)
	v.SetDefault("game.ai.search_turns_max", 5)
	v.SetDefault("game.spawn.min_player_distance", 6)
	v.SetDefault("game.spawn.max_attempts", 50)
	v.SetDefault("game.spawn.items_per_level", 4)
	v.SetDefault("game.max_depth", 10)
	v.SetDefault("game.biomes", []string{"catacombs", "caverns", "inferno"})
}
