package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"github.com/packbotics/warehouse-rl/internal/env"
)

// -----------------------------------------------------------------------------
// Colour definitions
// -----------------------------------------------------------------------------

var (
	EmptyColor   = color.RGBA{54, 57, 63, 255}
	WallColor    = color.RGBA{90, 90, 90, 255}
	GoalColor    = color.RGBA{60, 160, 70, 255}
	PackageColor = color.RGBA{220, 160, 40, 255}
	AgentColor   = color.RGBA{66, 135, 245, 255}
	SymbolColor  = color.White
)

// GridRenderer draws one observation as a tile grid.
type GridRenderer struct {
	tileSize    int
	offsetY     int
	defaultFont font.Face
}

// NewGridRenderer returns a renderer ready to use. offsetY leaves room
// for the HUD above the grid.
func NewGridRenderer(tileSize, offsetY int, f font.Face) *GridRenderer {
	return &GridRenderer{tileSize: tileSize, offsetY: offsetY, defaultFont: f}
}

// Draw renders the observation on the supplied Ebiten screen. The agent
// tile is drawn last so it wins every overlap.
func (r *GridRenderer) Draw(screen *ebiten.Image, width, height int, obs env.Observation) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.fillCell(screen, x, y, EmptyColor)
		}
	}

	for _, w := range obs.Walls {
		r.fillCell(screen, w.X, w.Y, WallColor)
	}

	r.fillCell(screen, obs.GoalPos.X, obs.GoalPos.Y, GoalColor)
	r.drawSymbol(screen, obs.GoalPos.X, obs.GoalPos.Y, "G")

	for _, p := range obs.Packages {
		if p.Delivered == 1 {
			continue
		}
		r.fillCell(screen, p.Pos.X, p.Pos.Y, PackageColor)
		r.drawSymbol(screen, p.Pos.X, p.Pos.Y, "$")
	}

	r.fillCell(screen, obs.AgentPos.X, obs.AgentPos.Y, AgentColor)
	if obs.Carrying != nil {
		// Inner marker showing the carried package.
		inner := r.tileSize / 3
		r.fillRect(screen,
			obs.AgentPos.X*r.tileSize+(r.tileSize-inner)/2,
			r.offsetY+obs.AgentPos.Y*r.tileSize+(r.tileSize-inner)/2,
			inner, inner, PackageColor)
	}
	r.drawSymbol(screen, obs.AgentPos.X, obs.AgentPos.Y, "A")
}

func (r *GridRenderer) fillCell(screen *ebiten.Image, x, y int, c color.Color) {
	// One-pixel gap between cells reads as grid lines.
	r.fillRect(screen, x*r.tileSize, r.offsetY+y*r.tileSize, r.tileSize-1, r.tileSize-1, c)
}

func (r *GridRenderer) fillRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	cell := ebiten.NewImage(w, h)
	cell.Fill(c)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(cell, op)
}

func (r *GridRenderer) drawSymbol(screen *ebiten.Image, x, y int, s string) {
	if r.defaultFont == nil {
		return
	}
	px := x*r.tileSize + r.tileSize/2 - 3
	py := r.offsetY + y*r.tileSize + r.tileSize/2 + 4
	text.Draw(screen, s, r.defaultFont, px, py, SymbolColor)
}
