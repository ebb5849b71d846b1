package env

import "github.com/packbotics/warehouse-rl/internal/env/core"

// PackageID identifies a package within one episode. IDs are assigned
// densely from 0 at spawn time and never reused.
type PackageID int

// Package is one deliverable item. Once Delivered flips true the
// position is frozen at the delivery cell and gameplay logic stops
// reading it.
type Package struct {
	ID        PackageID
	Pos       core.Position
	Delivered bool
}

// EnvState is the full mutable state of one episode. It is created by
// Reset, mutated exclusively by Step, and replaced wholesale by the next
// Reset. A nil Carrying pointer means the agent's hands are empty; that
// pointer is the single source of truth for the "is carrying" check.
type EnvState struct {
	StepCount int
	AgentPos  core.Position
	Carrying  *PackageID
	Battery   int
	Packages  []Package
	Walls     map[core.Position]struct{}
}

// IsCarrying reports whether the agent currently holds a package
func (s *EnvState) IsCarrying() bool {
	return s.Carrying != nil
}

// IsWall reports whether the given cell is a wall
func (s *EnvState) IsWall(pos core.Position) bool {
	_, ok := s.Walls[pos]
	return ok
}

// PackageByID returns the package with the given id, or nil if no such
// package exists in this episode.
func (s *EnvState) PackageByID(id PackageID) *Package {
	for i := range s.Packages {
		if s.Packages[i].ID == id {
			return &s.Packages[i]
		}
	}
	return nil
}

// UndeliveredAt returns the id of the first undelivered package (in
// stored id order) sitting on the given cell. Overlapping packages are
// legal, so the scan order is what makes pickup deterministic.
func (s *EnvState) UndeliveredAt(pos core.Position) (PackageID, bool) {
	for i := range s.Packages {
		p := &s.Packages[i]
		if !p.Delivered && p.Pos.Equal(pos) {
			return p.ID, true
		}
	}
	return 0, false
}

// AllDelivered reports whether every package has been delivered
func (s *EnvState) AllDelivered() bool {
	for i := range s.Packages {
		if !s.Packages[i].Delivered {
			return false
		}
	}
	return true
}
