// Package config loads application configuration via viper. The
// environment's own immutable env.Config is derived from here; nothing
// in internal/env reads viper directly.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/packbotics/warehouse-rl/internal/env"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Rewards RewardsConfig `mapstructure:"rewards"`
	Play    PlayConfig    `mapstructure:"play"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
	Monitor MonitorConfig `mapstructure:"monitor"`
}

// GameConfig holds grid and budget settings for the environment
type GameConfig struct {
	Width           int     `mapstructure:"width"`
	Height          int     `mapstructure:"height"`
	MaxSteps        int     `mapstructure:"max_steps"`
	NumPackages     int     `mapstructure:"num_packages"`
	BatteryCapacity int     `mapstructure:"battery_capacity"`
	WallFraction    float64 `mapstructure:"wall_fraction"`
}

// RewardsConfig holds the five reward/penalty scalars
type RewardsConfig struct {
	Deliver   float64 `mapstructure:"deliver"`
	Pickup    float64 `mapstructure:"pickup"`
	Step      float64 `mapstructure:"step"`
	Bump      float64 `mapstructure:"bump"`
	DropWrong float64 `mapstructure:"drop_wrong"`
}

// PlayConfig holds the manual-control session settings. The defaults
// deliberately use a bigger, denser grid than the training defaults.
type PlayConfig struct {
	Seed            int64   `mapstructure:"seed"`
	Width           int     `mapstructure:"width"`
	Height          int     `mapstructure:"height"`
	MaxSteps        int     `mapstructure:"max_steps"`
	NumPackages     int     `mapstructure:"num_packages"`
	BatteryCapacity int     `mapstructure:"battery_capacity"`
	WallFraction    float64 `mapstructure:"wall_fraction"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds the ebiten front end settings
type UIConfig struct {
	WindowTitle string `mapstructure:"window_title"`
	TileSize    int    `mapstructure:"tile_size"`
}

// MonitorConfig holds the websocket spectator settings
type MonitorConfig struct {
	Addr        string `mapstructure:"addr"`
	StepDelayMs int    `mapstructure:"step_delay_ms"`
}

var (
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Environment defaults
	v.SetDefault("game.width", 7)
	v.SetDefault("game.height", 7)
	v.SetDefault("game.max_steps", 200)
	v.SetDefault("game.num_packages", 1)
	v.SetDefault("game.battery_capacity", 50)
	v.SetDefault("game.wall_fraction", 0.12)

	// Reward defaults
	v.SetDefault("rewards.deliver", 20.0)
	v.SetDefault("rewards.pickup", 2.0)
	v.SetDefault("rewards.step", -1.0)
	v.SetDefault("rewards.bump", -5.0)
	v.SetDefault("rewards.drop_wrong", -7.0)

	// Manual-play session defaults
	v.SetDefault("play.seed", 42)
	v.SetDefault("play.width", 9)
	v.SetDefault("play.height", 9)
	v.SetDefault("play.max_steps", 300)
	v.SetDefault("play.num_packages", 2)
	v.SetDefault("play.battery_capacity", 120)
	v.SetDefault("play.wall_fraction", 0.15)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// UI defaults
	v.SetDefault("ui.window_title", "Warehouse RL")
	v.SetDefault("ui.tile_size", 48)

	// Monitor defaults
	v.SetDefault("monitor.addr", ":8090")
	v.SetDefault("monitor.step_delay_ms", 100)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/warehouse-rl")
	}

	v.SetEnvPrefix("WAREHOUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// Specific file requested but not found - use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
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

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// EnvConfig builds the immutable environment config from the game and
// rewards sections.
func (c *Config) EnvConfig() env.Config {
	return env.Config{
		Width:            c.Game.Width,
		Height:           c.Game.Height,
		MaxSteps:         c.Game.MaxSteps,
		NumPackages:      c.Game.NumPackages,
		BatteryCapacity:  c.Game.BatteryCapacity,
		WallFraction:     c.Game.WallFraction,
		RewardDeliver:    c.Rewards.Deliver,
		RewardPickup:     c.Rewards.Pickup,
		PenaltyStep:      c.Rewards.Step,
		PenaltyBump:      c.Rewards.Bump,
		PenaltyDropWrong: c.Rewards.DropWrong,
	}
}

// PlayEnvConfig builds the environment config for a manual-control
// session, keeping the configured reward scalars.
func (c *Config) PlayEnvConfig() env.Config {
	ec := c.EnvConfig()
	ec.Width = c.Play.Width
	ec.Height = c.Play.Height
	ec.MaxSteps = c.Play.MaxSteps
	ec.NumPackages = c.Play.NumPackages
	ec.BatteryCapacity = c.Play.BatteryCapacity
	ec.WallFraction = c.Play.WallFraction
	return ec
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if err := c.EnvConfig().Validate(); err != nil {
		return fmt.Errorf("game section: %w", err)
	}
	if err := c.PlayEnvConfig().Validate(); err != nil {
		return fmt.Errorf("play section: %w", err)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace/debug/info/warn/error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if c.UI.TileSize <= 0 {
		return fmt.Errorf("ui.tile_size must be positive")
	}
	if c.Monitor.Addr == "" {
		return fmt.Errorf("monitor.addr must not be empty")
	}
	if c.Monitor.StepDelayMs < 0 {
		return fmt.Errorf("monitor.step_delay_ms must be non-negative")
	}
	return nil
}
