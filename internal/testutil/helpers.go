package testutil

import (
	"github.com/rs/zerolog"

	"github.com/packbotics/warehouse-rl/internal/env"
)

// NewTestRNG creates a deterministic random source for tests
func NewTestRNG(seed int64) *env.RNG {
	return env.NewRNG(seed)
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// SmallCorridorConfig returns a 3x1 walless grid: agent at (0,0), the
// single package forced onto (1,0), goal at (2,0). Useful when a test
// needs full control over where the package spawns.
func SmallCorridorConfig() env.Config {
	cfg := env.DefaultConfig()
	cfg.Width = 3
	cfg.Height = 1
	cfg.NumPackages = 1
	cfg.WallFraction = 0
	cfg.MaxSteps = 50
	cfg.BatteryCapacity = 50
	return cfg
}
