// Package env implements a deterministic grid-world warehouse used as a
// reinforcement-learning environment. An agent moves on a rectangular
// grid, picks up packages, and delivers them to a fixed goal cell under
// a battery (step budget) constraint.
//
// Public API:
//
//	env, _ := env.New(env.DefaultConfig())
//	obs, _ := env.Reset(seed)
//	obs, reward, done, info, _ := env.Step(action)
//	fmt.Println(env.Render())
//
// The engine is the sole owner and mutator of episode state between
// Reset and Step calls. One instance is single-threaded; independent
// instances share nothing, including randomness.
package env

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/packbotics/warehouse-rl/internal/env/core"
	"github.com/packbotics/warehouse-rl/internal/env/events"
)

// Event labels reported in StepInfo.Event.
const (
	EventPickup                      = "pickup"
	EventPickupFailedAlreadyCarrying = "pickup_failed_already_carrying"
	EventPickupFailedNoPackage       = "pickup_failed_no_package"
	EventDrop                        = "drop"
	EventDropFailedNotCarrying       = "drop_failed_not_carrying"
	EventDeliver                     = "deliver"
	EventBump                        = "bump"
)

// Termination reasons reported in StepInfo.DoneReason, in priority
// order: max_steps beats battery_empty beats all_delivered.
const (
	DoneMaxSteps     = "max_steps"
	DoneBatteryEmpty = "battery_empty"
	DoneAllDelivered = "all_delivered"
)

// StepInfo is the auxiliary record returned by Step. Event is the
// primary label for what happened this step ("" when a movement
// succeeded quietly); DoneReason is set only on the terminal step.
type StepInfo struct {
	Event      string `json:"event,omitempty"`
	DoneReason string `json:"done_reason,omitempty"`
}

// Env is one warehouse environment instance. Termination is advisory:
// the engine keeps accepting Step calls after done=true (counters keep
// advancing), and it is the caller's contract not to do that.
type Env struct {
	cfg       Config
	goal      core.Position
	rng       *RNG
	state     *EnvState
	episodeID string
	logger    zerolog.Logger
	bus       *events.Bus
}

// Option configures an Env at construction time
type Option func(*Env)

// WithLogger attaches a structured logger to the environment
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Env) {
		e.logger = logger.With().Str("component", "warehouse_env").Logger()
	}
}

// WithEventBus attaches an event bus; the environment publishes episode
// and step events through it. Publishing never affects the step tuple.
func WithEventBus(bus *events.Bus) Option {
	return func(e *Env) {
		e.bus = bus
	}
}

// New creates an environment from an immutable config. No episode is
// active until Reset is called.
func New(cfg Config, opts ...Option) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Env{
		cfg:    cfg,
		goal:   cfg.GoalPos(),
		rng:    NewRNG(DefaultSeed),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the environment configuration
func (e *Env) Config() Config { return e.cfg }

// GoalPos returns the fixed delivery goal cell
func (e *Env) GoalPos() core.Position { return e.goal }

// EpisodeID returns the id of the current episode, or "" before the
// first Reset. The id is minted per episode and is not part of the
// deterministic observation contract.
func (e *Env) EpisodeID() string { return e.episodeID }

// Reset starts a new episode seeded from the given value and returns
// the initial observation. The same seed always reproduces the same
// layout; callers without a preference pass DefaultSeed.
func (e *Env) Reset(seed int64) (Observation, error) {
	e.rng = NewRNG(seed)

	start := e.cfg.AgentStart()
	p := newPlacer(e.cfg, e.rng)

	walls := p.placeWalls()

	packages := make([]Package, 0, e.cfg.NumPackages)
	for i := 0; i < e.cfg.NumPackages; i++ {
		pos, err := p.placePackage(walls)
		if err != nil {
			return Observation{}, err
		}
		packages = append(packages, Package{ID: PackageID(i), Pos: pos})
	}

	e.state = &EnvState{
		StepCount: 0,
		AgentPos:  start,
		Carrying:  nil,
		Battery:   e.cfg.BatteryCapacity,
		Packages:  packages,
		Walls:     walls,
	}
	e.episodeID = uuid.NewString()

	e.logger.Debug().
		Str("episode_id", e.episodeID).
		Int64("seed", seed).
		Int("walls", len(walls)).
		Int("packages", len(packages)).
		Msg("Episode reset")

	if e.bus != nil {
		e.bus.Publish(events.NewEpisodeStartedEvent(
			e.episodeID, seed, e.cfg.Width, e.cfg.Height, len(packages), len(walls)))
	}

	return project(e.state, e.goal), nil
}

// Step applies one action and advances the simulation. It returns the
// new observation, the summed reward for this step, the done flag, and
// the info record. Calling Step before Reset or with an action outside
// the 0-5 space is an error with no state mutation.
func (e *Env) Step(action core.Action) (Observation, float64, bool, StepInfo, error) {
	if e.state == nil {
		return Observation{}, 0, false, StepInfo{}, core.ErrEpisodeNotStarted
	}
	if !action.IsValid() {
		return Observation{}, 0, false, StepInfo{}, fmt.Errorf("%w: %d", core.ErrInvalidAction, int(action))
	}

	s := e.state
	info := StepInfo{}
	reward := e.cfg.PenaltyStep

	var (
		bumped       bool
		pickedUp     bool
		droppedWrong bool
		delivered    bool
	)

	switch {
	case action.IsMovement():
		offset, _ := action.Offset()
		target := s.AgentPos.Add(offset)
		if target.IsValid(e.cfg.Width, e.cfg.Height) && !s.IsWall(target) {
			s.AgentPos = target
		} else {
			bumped = true
		}

	case action == core.ActionPickup:
		if s.IsCarrying() {
			info.Event = EventPickupFailedAlreadyCarrying
		} else if pid, ok := s.UndeliveredAt(s.AgentPos); ok {
			id := pid
			s.Carrying = &id
			// Attach immediately so the carry invariant holds from
			// the moment of pickup.
			s.PackageByID(pid).Pos = s.AgentPos
			pickedUp = true
			info.Event = EventPickup
			if e.bus != nil {
				e.bus.Publish(events.NewPackagePickedUpEvent(
					e.episodeID, int(pid), s.AgentPos.X, s.AgentPos.Y))
			}
		} else {
			info.Event = EventPickupFailedNoPackage
		}

	case action == core.ActionDrop:
		if !s.IsCarrying() {
			info.Event = EventDropFailedNotCarrying
			break
		}
		pid := *s.Carrying
		pkg := s.PackageByID(pid)
		if pkg == nil {
			return Observation{}, 0, false, StepInfo{}, fmt.Errorf("%w: carrying package %d not found", core.ErrInconsistentCarry, pid)
		}
		pkg.Pos = s.AgentPos
		if s.AgentPos.Equal(e.goal) {
			pkg.Delivered = true
			s.Carrying = nil
			delivered = true
			info.Event = EventDeliver
			if e.bus != nil {
				remaining := 0
				for i := range s.Packages {
					if !s.Packages[i].Delivered {
						remaining++
					}
				}
				e.bus.Publish(events.NewPackageDeliveredEvent(e.episodeID, int(pid), remaining))
			}
		} else {
			s.Carrying = nil
			droppedWrong = true
			info.Event = EventDrop
			if e.bus != nil {
				e.bus.Publish(events.NewPackageDroppedEvent(
					e.episodeID, int(pid), s.AgentPos.X, s.AgentPos.Y))
			}
		}
	}

	// Bump reporting wins over any other label set this step; movement
	// and pickup/drop are mutually exclusive, so there is nothing to
	// lose by overwriting.
	if bumped {
		reward += e.cfg.PenaltyBump
		info.Event = EventBump
		if e.bus != nil {
			e.bus.Publish(events.NewAgentBumpedEvent(e.episodeID, s.AgentPos.X, s.AgentPos.Y))
		}
	}
	if droppedWrong {
		reward += e.cfg.PenaltyDropWrong
	}
	if pickedUp {
		reward += e.cfg.RewardPickup
	}
	if delivered {
		reward += e.cfg.RewardDeliver
	}

	// Carried package travels with the agent on movement steps.
	if s.IsCarrying() {
		pkg := s.PackageByID(*s.Carrying)
		if pkg == nil {
			return Observation{}, 0, false, StepInfo{}, fmt.Errorf("%w: carrying package %d not found", core.ErrInconsistentCarry, *s.Carrying)
		}
		pkg.Pos = s.AgentPos
	}

	s.StepCount++
	if s.Battery > 0 {
		s.Battery--
	}

	done := false
	switch {
	case s.StepCount >= e.cfg.MaxSteps:
		done = true
		info.DoneReason = DoneMaxSteps
	case s.Battery == 0:
		done = true
		info.DoneReason = DoneBatteryEmpty
	case s.AllDelivered():
		done = true
		info.DoneReason = DoneAllDelivered
	}

	if e.bus != nil {
		e.bus.Publish(events.NewStepProcessedEvent(
			e.episodeID, s.StepCount, int(action), reward, info.Event))
		if done {
			e.bus.Publish(events.NewEpisodeEndedEvent(
				e.episodeID, info.DoneReason, s.StepCount, s.Battery))
		}
	}

	return project(s, e.goal), reward, done, info, nil
}

// Render returns a human-readable grid snapshot, or "" before the first
// Reset. Pure read-only adapter over the current state.
func (e *Env) Render() string {
	if e.state == nil {
		return ""
	}
	return renderANSI(e.state, e.cfg.Width, e.cfg.Height, e.goal)
}
