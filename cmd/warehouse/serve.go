package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/packbotics/warehouse-rl/internal/config"
	"github.com/packbotics/warehouse-rl/internal/env"
	"github.com/packbotics/warehouse-rl/internal/experience"
	"github.com/packbotics/warehouse-rl/internal/monitor"
)

var (
	serveAddr       string
	serveBaseSeed   int64
	servePolicySeed int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run continuous rollouts with a websocket spectator feed",
	Long: `Runs random-policy episodes back to back and broadcasts every step
over a websocket feed at /ws, so rollouts can be watched live.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: monitor.addr from config)")
	serveCmd.Flags().Int64Var(&serveBaseSeed, "seed", env.DefaultSeed, "seed of the first episode")
	serveCmd.Flags().Int64Var(&servePolicySeed, "policy-seed", 1, "seed for the random policy")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	addr := serveAddr
	if addr == "" {
		addr = cfg.Monitor.Addr
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("Received shutdown signal, stopping")
		cancel()
	}()

	hub := monitor.NewHub(logger)
	server := monitor.NewServer(addr, hub, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()

	e, err := env.New(cfg.EnvConfig(), env.WithLogger(logger))
	if err != nil {
		return err
	}
	buffer := experience.NewBuffer(10000, logger)
	collector := experience.NewCollector(e, buffer, logger)
	policy := experience.NewRandomPolicy(servePolicySeed)

	stepDelay := time.Duration(cfg.Monitor.StepDelayMs) * time.Millisecond
	collector.OnStep = func(t experience.Transition) {
		hub.Broadcast(monitor.Frame{
			Type:       "step",
			EpisodeID:  t.EpisodeID,
			Step:       t.Step,
			Action:     t.Action.String(),
			Reward:     t.Reward,
			Done:       t.Done,
			DoneReason: t.DoneReason,
			Obs:        t.NextObs,
			Render:     e.Render(),
		})
		if stepDelay > 0 {
			time.Sleep(stepDelay)
		}
	}

	go func() {
		seed := serveBaseSeed
		for ctx.Err() == nil {
			if _, err := collector.RunEpisode(seed, policy); err != nil {
				logger.Error().Err(err).Int64("seed", seed).Msg("Episode failed")
				cancel()
				return
			}
			seed++
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
