// Package ui is the interactive ebiten front end. It maps keystrokes to
// actions and calls Reset/Step on the environment; all simulation stays
// inside internal/env.
package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/packbotics/warehouse-rl/internal/env"
	"github.com/packbotics/warehouse-rl/internal/ui/input"
	"github.com/packbotics/warehouse-rl/internal/ui/renderer"
)

const hudHeight = 48

// Game drives one environment from the keyboard.
type Game struct {
	env      *env.Env
	seed     int64
	tileSize int
	logger   zerolog.Logger

	gridRenderer *renderer.GridRenderer
	defaultFont  font.Face

	obs        env.Observation
	lastReward float64
	lastInfo   env.StepInfo
	done       bool
}

// NewGame creates the front end and starts the first episode
func NewGame(e *env.Env, seed int64, tileSize int, logger zerolog.Logger) (*Game, error) {
	g := &Game{
		env:         e,
		seed:        seed,
		tileSize:    tileSize,
		logger:      logger.With().Str("component", "ui").Logger(),
		defaultFont: basicfont.Face7x13,
	}
	g.gridRenderer = renderer.NewGridRenderer(tileSize, hudHeight, g.defaultFont)

	obs, err := e.Reset(seed)
	if err != nil {
		return nil, fmt.Errorf("start episode: %w", err)
	}
	g.obs = obs
	return g, nil
}

// Update handles input and advances the environment by at most one step
// per frame.
func (g *Game) Update() error {
	if input.QuitPressed() {
		return ebiten.Termination
	}

	if input.ResetPressed() {
		obs, err := g.env.Reset(g.seed)
		if err != nil {
			return err
		}
		g.obs = obs
		g.lastReward = 0
		g.lastInfo = env.StepInfo{}
		g.done = false
		g.logger.Info().Int64("seed", g.seed).Msg("Episode restarted")
		return nil
	}

	if g.done {
		return nil
	}

	action, ok := input.Action()
	if !ok {
		return nil
	}

	obs, reward, done, info, err := g.env.Step(action)
	if err != nil {
		return err
	}
	g.obs = obs
	g.lastReward = reward
	g.lastInfo = info
	g.done = done
	return nil
}

// Draw renders the HUD and the grid
func (g *Game) Draw(screen *ebiten.Image) {
	carrying := "none"
	if g.obs.Carrying != nil {
		carrying = fmt.Sprintf("%d", *g.obs.Carrying)
	}
	hud := fmt.Sprintf("step=%d battery=%d carrying=%s reward=%.1f event=%s",
		g.obs.StepCount, g.obs.Battery, carrying, g.lastReward, g.lastInfo.Event)
	ebitenutil.DebugPrintAt(screen, hud, 5, 5)

	if g.done {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("Episode ended (%s). Press R to reset, Q to quit.", g.lastInfo.DoneReason), 5, 25)
	} else {
		ebitenutil.DebugPrintAt(screen, "Move: WASD/arrows  Pickup: space  Drop: enter  R: reset  Q: quit", 5, 25)
	}

	cfg := g.env.Config()
	g.gridRenderer.Draw(screen, cfg.Width, cfg.Height, g.obs)
}

// Layout defines the screen size from the grid dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.env.Config()
	return cfg.Width * g.tileSize, hudHeight + cfg.Height*g.tileSize
}
