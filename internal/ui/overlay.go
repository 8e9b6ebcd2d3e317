//go:build ebiten

package ui

import (
	"image/color"

	"crimson-sprawl/internal/growth"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var ringColors = [...]color.RGBA{
	RingActive:  {R: 255, G: 170, B: 60, A: 200},
	RingCapped:  {R: 150, G: 150, B: 160, A: 140},
	RingStarved: {R: 230, G: 40, B: 40, A: 200},
}

// Overlay draws origin frontiers and the hovered cell on top of the growth
// raster. Keys 1 and 2 toggle the two layers.
type Overlay struct {
	world *growth.World
	scale int

	showRings bool
	showHover bool
}

// NewOverlay constructs an overlay for world drawn at scale.
func NewOverlay(world *growth.World, scale int, visible bool) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{world: world, scale: scale, showRings: visible, showHover: visible}
}

// Update handles layer toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showRings = !o.showRings
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHover = !o.showHover
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showRings {
		for _, r := range Rings(o.world, o.scale) {
			vector.FillCircle(screen, r.CX, r.CY, float32(o.scale)*0.6, ringColors[r.State], true)
			if r.R > 0 {
				vector.StrokeCircle(screen, r.CX, r.CY, r.R, 1, ringColors[r.State], true)
			}
		}
	}
	if o.showHover {
		mx, my := ebiten.CursorPosition()
		x, y, ok := ScreenToRaster(o.world, o.scale, mx, my)
		if !ok {
			return
		}
		col := color.RGBA{R: 240, G: 240, B: 240, A: 160}
		if o.world.IsOccupied(o.world.RasterToWorld(x, y)) {
			col = color.RGBA{R: 120, G: 120, B: 120, A: 160}
		}
		s := float32(o.scale)
		vector.StrokeRect(screen, float32(x)*s, float32(y)*s, s, s, 1, col, false)
	}
}
