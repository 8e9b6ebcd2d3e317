//go:build ebiten

package app

import (
	"time"

	"crimson-sprawl/internal/growth"
	"crimson-sprawl/internal/render"
	"crimson-sprawl/internal/scenario"
	"crimson-sprawl/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// dragSlop is how far, in pixels, the cursor may move between press and
// release for the click to count as a designation.
const dragSlop = 4

// Game adapts a growth world to the ebiten.Game interface.
type Game struct {
	world    *growth.World
	schedule *scenario.Schedule
	painter  *render.GridPainter
	hud      *ui.HUD
	overlay  *ui.Overlay

	scale    int
	paused   bool
	tickOnce bool
	steps    int

	pressX, pressY int
	pressed        bool
}

// New constructs a Game for world drawn at scale pixels per cell. A HUD
// panel of hudWidth pixels is attached when hudWidth > 0.
func New(world *growth.World, schedule *scenario.Schedule, scale, hudWidth int, overlay bool) *Game {
	if scale <= 0 {
		scale = 1
	}
	if schedule == nil {
		schedule = scenario.NewSchedule(nil)
	}
	size := world.Size()
	g := &Game{
		world:    world,
		schedule: schedule,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(world, hudWidth),
		overlay:  ui.NewOverlay(world, scale, overlay),
		scale:    scale,
	}
	g.hud.SetHints(
		"click  designate origin",
		"space  pause   n  step",
		"r      reset   q  quit",
		"1/2    rings / hover",
	)
	g.schedule.Apply(world, 0)
	return g
}

// Reset tears the world down. Scripted designations are not replayed.
func (g *Game) Reset() {
	g.world.Reset(0)
	g.tickOnce = false
	g.steps = 0
}

// Update handles per-frame input and advances the simulation by one frame of
// wall time through the world's fixed-step clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}

	g.overlay.Update()
	simWidth := g.world.Size().W * g.scale
	if !g.hud.Update(simWidth) {
		g.handleClick(simWidth)
	}

	switch {
	case g.tickOnce:
		g.world.Step()
		g.steps++
		g.tickOnce = false
	case !g.paused:
		g.steps += g.world.Advance(time.Second / time.Duration(ebiten.TPS()))
	}
	g.schedule.Apply(g.world, g.steps)
	return nil
}

func (g *Game) handleClick(simWidth int) {
	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressX, g.pressY = mx, my
		g.pressed = mx < simWidth
	}
	if !g.pressed || !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return
	}
	g.pressed = false
	if abs(mx-g.pressX) > dragSlop || abs(my-g.pressY) > dragSlop {
		return
	}
	x, y, ok := ui.ScreenToRaster(g.world, g.scale, mx, my)
	if !ok {
		return
	}
	g.world.Designate(g.world.RasterToWorld(x, y))
}

// Draw renders the growth raster, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world.Cells(), g.world.Palette(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.world.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
