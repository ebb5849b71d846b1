package env

import (
	"fmt"

	"github.com/packbotics/warehouse-rl/internal/env/core"
)

// Config is the immutable configuration for one environment instance.
// It is copied at construction time and never mutated afterwards.
type Config struct {
	Width           int
	Height          int
	MaxSteps        int
	NumPackages     int
	BatteryCapacity int

	// WallFraction is the fraction of candidate cells (all cells except
	// the agent start and the goal) that become walls.
	WallFraction float64

	RewardDeliver    float64
	RewardPickup     float64
	PenaltyStep      float64
	PenaltyBump      float64
	PenaltyDropWrong float64
}

// DefaultConfig returns the standard warehouse configuration
func DefaultConfig() Config {
	return Config{
		Width:            7,
		Height:           7,
		MaxSteps:         200,
		NumPackages:      1,
		BatteryCapacity:  50,
		WallFraction:     0.12,
		RewardDeliver:    20.0,
		RewardPickup:     2.0,
		PenaltyStep:      -1.0,
		PenaltyBump:      -5.0,
		PenaltyDropWrong: -7.0,
	}
}

// Validate checks that the configuration describes a usable grid
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", core.ErrInvalidConfig, c.Width, c.Height)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("%w: max_steps must be positive, got %d", core.ErrInvalidConfig, c.MaxSteps)
	}
	if c.NumPackages < 1 {
		return fmt.Errorf("%w: num_packages must be positive, got %d", core.ErrInvalidConfig, c.NumPackages)
	}
	if c.BatteryCapacity < 1 {
		return fmt.Errorf("%w: battery_capacity must be positive, got %d", core.ErrInvalidConfig, c.BatteryCapacity)
	}
	if c.WallFraction < 0 || c.WallFraction >= 1 {
		return fmt.Errorf("%w: wall_fraction must be in [0,1), got %v", core.ErrInvalidConfig, c.WallFraction)
	}
	return nil
}

// AgentStart returns the fixed agent spawn cell, the top-left corner
func (c Config) AgentStart() core.Position {
	return core.NewPosition(0, 0)
}

// GoalPos returns the fixed delivery goal, the bottom-right corner
func (c Config) GoalPos() core.Position {
	return core.NewPosition(c.Width-1, c.Height-1)
}
