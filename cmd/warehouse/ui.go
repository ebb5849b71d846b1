package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/packbotics/warehouse-rl/internal/config"
	"github.com/packbotics/warehouse-rl/internal/env"
	"github.com/packbotics/warehouse-rl/internal/ui"
)

var uiSeed int64

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Play an episode in a graphical window",
	RunE:  runUI,
}

func init() {
	uiCmd.Flags().Int64Var(&uiSeed, "seed", -1, "episode seed (default: play.seed from config)")
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	seed := uiSeed
	if seed < 0 {
		seed = cfg.Play.Seed
	}

	e, err := env.New(cfg.PlayEnvConfig(), env.WithLogger(logger))
	if err != nil {
		return err
	}

	game, err := ui.NewGame(e, seed, cfg.UI.TileSize, logger)
	if err != nil {
		return err
	}

	envCfg := e.Config()
	ebiten.SetWindowSize(envCfg.Width*cfg.UI.TileSize, 48+envCfg.Height*cfg.UI.TileSize)
	ebiten.SetWindowTitle(cfg.UI.WindowTitle)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
