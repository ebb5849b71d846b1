package env

import (
	"fmt"

	"github.com/packbotics/warehouse-rl/internal/env/core"
)

// placer computes constraint-respecting spawn positions at reset time.
// It holds the environment config plus the episode RNG, so two placers
// built from the same seed lay out identical episodes.
type placer struct {
	cfg   Config
	start core.Position
	goal  core.Position
	rng   *RNG
}

func newPlacer(cfg Config, rng *RNG) *placer {
	return &placer{
		cfg:   cfg,
		start: cfg.AgentStart(),
		goal:  cfg.GoalPos(),
		rng:   rng,
	}
}

// candidates enumerates grid cells in row-major order (y ascending, then
// x ascending), skipping any cell for which exclude returns true. The
// enumeration order is part of the reproducibility contract: it fixes
// which cell each RNG draw lands on for a given seed.
func (p *placer) candidates(exclude func(core.Position) bool) []core.Position {
	cells := make([]core.Position, 0, p.cfg.Width*p.cfg.Height)
	for y := 0; y < p.cfg.Height; y++ {
		for x := 0; x < p.cfg.Width; x++ {
			pos := core.NewPosition(x, y)
			if exclude(pos) {
				continue
			}
			cells = append(cells, pos)
		}
	}
	return cells
}

// placeWalls selects wall cells by drawing without replacement from the
// shrinking candidate list. The wall count is floor(candidates *
// WallFraction); if the pool runs dry first, placement simply stops.
// Walls never land on the agent start or the goal.
func (p *placer) placeWalls() map[core.Position]struct{} {
	pool := p.candidates(func(pos core.Position) bool {
		return pos.Equal(p.start) || pos.Equal(p.goal)
	})

	want := int(float64(len(pool)) * p.cfg.WallFraction)
	walls := make(map[core.Position]struct{}, want)
	for placed := 0; placed < want; placed++ {
		if len(pool) == 0 {
			break
		}
		idx := p.rng.Intn(len(pool))
		walls[pool[idx]] = struct{}{}
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return walls
}

// placePackage draws one spawn cell for a package, excluding the agent
// start, the goal, and all walls. Previously placed packages are NOT
// excluded: packages may overlap. Pickup resolves overlaps by scanning
// in id order, so the behavior stays deterministic.
func (p *placer) placePackage(walls map[core.Position]struct{}) (core.Position, error) {
	pool := p.candidates(func(pos core.Position) bool {
		if pos.Equal(p.start) || pos.Equal(p.goal) {
			return true
		}
		_, isWall := walls[pos]
		return isWall
	})

	pos, err := Choice(p.rng, pool)
	if err != nil {
		return core.Position{}, fmt.Errorf("package placement on %dx%d grid: %w", p.cfg.Width, p.cfg.Height, err)
	}
	return pos, nil
}
