package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/packbotics/warehouse-rl/internal/config"
	"github.com/packbotics/warehouse-rl/internal/env"
	"github.com/packbotics/warehouse-rl/internal/env/events"
	"github.com/packbotics/warehouse-rl/internal/env/events/subscribers"
	"github.com/packbotics/warehouse-rl/internal/experience"
)

var (
	rolloutEpisodes   int
	rolloutBaseSeed   int64
	rolloutPolicySeed int64
	rolloutBufferCap  int
	rolloutLogEvents  bool
)

var rolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Collect random-policy episodes into an experience buffer",
	RunE:  runRollout,
}

func init() {
	rolloutCmd.Flags().IntVar(&rolloutEpisodes, "episodes", 5, "number of episodes to collect")
	rolloutCmd.Flags().Int64Var(&rolloutBaseSeed, "seed", env.DefaultSeed, "seed of the first episode; later episodes use consecutive seeds")
	rolloutCmd.Flags().Int64Var(&rolloutPolicySeed, "policy-seed", 1, "seed for the random policy")
	rolloutCmd.Flags().IntVar(&rolloutBufferCap, "buffer", 10000, "experience buffer capacity")
	rolloutCmd.Flags().BoolVar(&rolloutLogEvents, "log-events", false, "log every environment event")
}

func runRollout(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	opts := []env.Option{env.WithLogger(logger)}
	if rolloutLogEvents {
		bus := events.NewBus(logger)
		bus.Subscribe(subscribers.NewLoggerSubscriber("rollout-logger", logger, zerolog.DebugLevel))
		opts = append(opts, env.WithEventBus(bus))
	}

	e, err := env.New(cfg.EnvConfig(), opts...)
	if err != nil {
		return err
	}

	buffer := experience.NewBuffer(rolloutBufferCap, logger)
	collector := experience.NewCollector(e, buffer, logger)
	policy := experience.NewRandomPolicy(rolloutPolicySeed)

	summaries, err := collector.Run(rolloutEpisodes, rolloutBaseSeed, policy)
	if err != nil {
		return err
	}

	var totalSteps int
	var totalReward float64
	for _, s := range summaries {
		totalSteps += s.Steps
		totalReward += s.TotalReward
	}
	added, dropped := buffer.Stats()
	logger.Info().
		Int("episodes", len(summaries)).
		Int("total_steps", totalSteps).
		Float64("total_reward", totalReward).
		Int64("transitions_added", added).
		Int64("transitions_dropped", dropped).
		Msg("Rollout complete")
	return nil
}
