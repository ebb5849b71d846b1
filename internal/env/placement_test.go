package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packbotics/warehouse-rl/internal/env/core"
)

func TestPlaceWallsCount(t *testing.T) {
	// 7x7 grid: 49 cells minus start and goal leaves 47 candidates;
	// floor(47 * 0.12) = 5 walls.
	cfg := DefaultConfig()
	p := newPlacer(cfg, NewRNG(5))

	walls := p.placeWalls()
	assert.Len(t, walls, 5)
}

func TestPlaceWallsExcludesStartAndGoal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WallFraction = 0.9

	for seed := int64(0); seed < 20; seed++ {
		p := newPlacer(cfg, NewRNG(seed))
		walls := p.placeWalls()

		assert.NotContains(t, walls, cfg.AgentStart(), "seed %d placed a wall on the agent start", seed)
		assert.NotContains(t, walls, cfg.GoalPos(), "seed %d placed a wall on the goal", seed)
	}
}

func TestPlaceWallsZeroFraction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WallFraction = 0

	p := newPlacer(cfg, NewRNG(1))
	assert.Empty(t, p.placeWalls())
}

func TestPlaceWallsDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	a := newPlacer(cfg, NewRNG(99)).placeWalls()
	b := newPlacer(cfg, NewRNG(99)).placeWalls()
	assert.Equal(t, a, b)
}

func TestPlacePackageRespectsExclusions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WallFraction = 0.5

	for seed := int64(0); seed < 20; seed++ {
		rng := NewRNG(seed)
		p := newPlacer(cfg, rng)
		walls := p.placeWalls()

		pos, err := p.placePackage(walls)
		require.NoError(t, err)

		assert.True(t, pos.IsValid(cfg.Width, cfg.Height))
		assert.False(t, pos.Equal(cfg.AgentStart()), "seed %d spawned a package on the agent start", seed)
		assert.False(t, pos.Equal(cfg.GoalPos()), "seed %d spawned a package on the goal", seed)
		assert.NotContains(t, walls, pos, "seed %d spawned a package on a wall", seed)
	}
}

func TestPlacePackageForcedCell(t *testing.T) {
	// 3x1 corridor: the only cell left after excluding start and goal
	// is (1,0), so the draw has exactly one possible outcome.
	cfg := DefaultConfig()
	cfg.Width = 3
	cfg.Height = 1
	cfg.WallFraction = 0

	p := newPlacer(cfg, NewRNG(0))
	pos, err := p.placePackage(p.placeWalls())
	require.NoError(t, err)
	assert.Equal(t, core.NewPosition(1, 0), pos)
}

func TestPlacePackageNoCandidates(t *testing.T) {
	// 2x1 grid has no cell besides start and goal.
	cfg := DefaultConfig()
	cfg.Width = 2
	cfg.Height = 1
	cfg.WallFraction = 0

	p := newPlacer(cfg, NewRNG(0))
	_, err := p.placePackage(p.placeWalls())
	assert.ErrorIs(t, err, core.ErrNoCandidateCells)
}

func TestCandidateOrderIsRowMajor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 3
	cfg.Height = 2

	p := newPlacer(cfg, NewRNG(0))
	cells := p.candidates(func(core.Position) bool { return false })

	want := []core.Position{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
	}
	assert.Equal(t, want, cells)
}
