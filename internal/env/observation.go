package env

import (
	"sort"

	"github.com/packbotics/warehouse-rl/internal/env/core"
)

// PackageObs is the externally visible view of one package: its current
// position and its delivered flag encoded as 0/1.
type PackageObs struct {
	Pos       core.Position `json:"pos"`
	Delivered int           `json:"delivered"`
}

// Observation is the entire externally observable surface of the
// engine. It is a value snapshot: slices and the carrying pointer are
// fresh copies, so callers can hold or mutate an observation without
// touching episode state.
type Observation struct {
	AgentPos  core.Position   `json:"agent_pos"`
	Battery   int             `json:"battery"`
	Carrying  *PackageID      `json:"carrying"`
	Packages  []PackageObs    `json:"packages"`
	GoalPos   core.Position   `json:"goal_pos"`
	Walls     []core.Position `json:"walls"`
	StepCount int             `json:"step_count"`
}

// project converts internal state into an Observation without mutating
// anything. Packages appear in id order; walls are sorted by X then Y.
func project(s *EnvState, goal core.Position) Observation {
	packages := make([]PackageObs, len(s.Packages))
	for i, p := range s.Packages {
		delivered := 0
		if p.Delivered {
			delivered = 1
		}
		packages[i] = PackageObs{Pos: p.Pos, Delivered: delivered}
	}

	walls := make([]core.Position, 0, len(s.Walls))
	for pos := range s.Walls {
		walls = append(walls, pos)
	}
	sort.Slice(walls, func(i, j int) bool { return walls[i].Less(walls[j]) })

	var carrying *PackageID
	if s.Carrying != nil {
		id := *s.Carrying
		carrying = &id
	}

	return Observation{
		AgentPos:  s.AgentPos,
		Battery:   s.Battery,
		Carrying:  carrying,
		Packages:  packages,
		GoalPos:   goal,
		Walls:     walls,
		StepCount: s.StepCount,
	}
}
