package experience

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/packbotics/warehouse-rl/internal/env"
	"github.com/packbotics/warehouse-rl/internal/env/core"
)

// Policy selects the next action from an observation
type Policy interface {
	SelectAction(obs env.Observation) core.Action
}

// RandomPolicy samples uniformly from the full action space. It owns
// its own RNG, separate from the environment's, so policy randomness
// never perturbs episode layout.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy creates a random policy with its own seeded source
func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

// SelectAction returns a uniform action in [0, 6)
func (p *RandomPolicy) SelectAction(_ env.Observation) core.Action {
	return core.Action(p.rng.Intn(int(core.ActionDrop) + 1))
}

// EpisodeSummary describes one finished rollout
type EpisodeSummary struct {
	EpisodeID   string
	Seed        int64
	Steps       int
	TotalReward float64
	DoneReason  string
}

// Collector drives a policy through episodes and records every
// transition into a buffer.
type Collector struct {
	env    *env.Env
	buffer *Buffer
	logger zerolog.Logger

	// OnStep, when set, observes every recorded transition. Used by the
	// spectator feed.
	OnStep func(Transition)
}

// NewCollector creates a collector over one environment and buffer
func NewCollector(e *env.Env, buffer *Buffer, logger zerolog.Logger) *Collector {
	return &Collector{
		env:    e,
		buffer: buffer,
		logger: logger.With().Str("component", "experience_collector").Logger(),
	}
}

// RunEpisode resets the environment with the given seed and steps the
// policy until the episode terminates.
func (c *Collector) RunEpisode(seed int64, policy Policy) (EpisodeSummary, error) {
	obs, err := c.env.Reset(seed)
	if err != nil {
		return EpisodeSummary{}, fmt.Errorf("reset episode (seed %d): %w", seed, err)
	}

	summary := EpisodeSummary{
		EpisodeID: c.env.EpisodeID(),
		Seed:      seed,
	}

	for {
		action := policy.SelectAction(obs)
		nextObs, reward, done, info, err := c.env.Step(action)
		if err != nil {
			return summary, fmt.Errorf("step %d: %w", summary.Steps, err)
		}

		t := Transition{
			EpisodeID:  summary.EpisodeID,
			Step:       obs.StepCount,
			Obs:        obs,
			Action:     action,
			Reward:     reward,
			NextObs:    nextObs,
			Done:       done,
			DoneReason: info.DoneReason,
		}
		if err := c.buffer.Add(t); err != nil {
			return summary, fmt.Errorf("record transition: %w", err)
		}
		if c.OnStep != nil {
			c.OnStep(t)
		}

		summary.Steps++
		summary.TotalReward += reward
		obs = nextObs

		if done {
			summary.DoneReason = info.DoneReason
			break
		}
	}

	c.logger.Info().
		Str("episode_id", summary.EpisodeID).
		Int64("seed", summary.Seed).
		Int("steps", summary.Steps).
		Float64("total_reward", summary.TotalReward).
		Str("done_reason", summary.DoneReason).
		Msg("Episode complete")

	return summary, nil
}

// Run collects the given number of episodes with consecutive seeds
// starting at baseSeed.
func (c *Collector) Run(episodes int, baseSeed int64, policy Policy) ([]EpisodeSummary, error) {
	summaries := make([]EpisodeSummary, 0, episodes)
	for i := 0; i < episodes; i++ {
		s, err := c.RunEpisode(baseSeed+int64(i), policy)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
