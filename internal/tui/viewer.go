package tui

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"crimson-sprawl/internal/growth"
	"crimson-sprawl/internal/scenario"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// cellWidth is the number of terminal columns per lattice cell; terminal
// glyphs are roughly twice as tall as wide.
const cellWidth = 2

// Viewer renders a growth world in a terminal and maps keys and mouse clicks
// to designations.
type Viewer struct {
	screen   tcell.Screen
	world    *growth.World
	schedule *scenario.Schedule
	chime    *Chime
	log      *zap.Logger

	frame  time.Duration
	cx, cy int
	paused bool
	steps  int

	wasComplete bool
}

// NewViewer wires a viewer around an initialised screen.
func NewViewer(screen tcell.Screen, world *growth.World, schedule *scenario.Schedule, chime *Chime, frame time.Duration, log *zap.Logger) *Viewer {
	if frame <= 0 {
		frame = 50 * time.Millisecond
	}
	if schedule == nil {
		schedule = scenario.NewSchedule(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	size := world.Size()
	v := &Viewer{
		screen:   screen,
		world:    world,
		schedule: schedule,
		chime:    chime,
		log:      log,
		frame:    frame,
		cx:       size.W / 2,
		cy:       size.H / 2,
	}
	v.schedule.Apply(world, 0)
	return v
}

// Run drives the viewer until ctx is cancelled or the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	last := time.Now()
	v.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.handleEvent(ev) {
				return nil
			}
			v.draw()
		case now := <-ticker.C:
			v.advance(now.Sub(last))
			last = now
			v.draw()
		}
	}
}

func (v *Viewer) advance(elapsed time.Duration) {
	if !v.paused {
		v.steps += v.world.Advance(elapsed)
	}
	v.schedule.Apply(v.world, v.steps)
	v.checkCompletion()
}

func (v *Viewer) checkCompletion() {
	complete := v.world.IsComplete()
	if complete && !v.wasComplete {
		played := v.chime.Play()
		v.log.Info("terminal run complete",
			zap.Int("tick", v.world.Tick()),
			zap.Int("patches", v.world.PatchCount()),
			zap.Bool("chime", played))
	}
	v.wasComplete = complete
}

// handleEvent applies one input event and reports whether to keep running.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.moveCursor(0, -1)
		case tcell.KeyDown:
			v.moveCursor(0, 1)
		case tcell.KeyLeft:
			v.moveCursor(-1, 0)
		case tcell.KeyRight:
			v.moveCursor(1, 0)
		case tcell.KeyEnter:
			v.designateAt(v.cx, v.cy)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				v.moveCursor(-1, 0)
			case 'j':
				v.moveCursor(0, 1)
			case 'k':
				v.moveCursor(0, -1)
			case 'l':
				v.moveCursor(1, 0)
			case ' ', 'd':
				v.designateAt(v.cx, v.cy)
			case 'p':
				v.paused = !v.paused
			case 'n':
				v.world.Step()
				v.steps++
				v.checkCompletion()
			case 'r':
				v.world.Reset(0)
				v.steps = 0
				v.wasComplete = false
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			v.cx, v.cy = x/cellWidth, y
			v.clampCursor()
			v.designateAt(v.cx, v.cy)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) moveCursor(dx, dy int) {
	v.cx += dx
	v.cy += dy
	v.clampCursor()
}

func (v *Viewer) clampCursor() {
	size := v.world.Size()
	v.cx = min(max(v.cx, 0), size.W-1)
	v.cy = min(max(v.cy, 0), size.H-1)
}

func (v *Viewer) designateAt(x, y int) {
	id := v.world.Designate(v.world.RasterToWorld(x, y))
	v.wasComplete = false
	v.log.Debug("terminal designation", zap.Int("origin", int(id)), zap.Int("x", x), zap.Int("y", y))
}

func (v *Viewer) draw() {
	v.screen.Clear()
	size := v.world.Size()
	cells := v.world.Cells()
	palette := v.world.Palette()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			style := tcell.StyleDefault.Background(paletteColor(palette, cells[y*size.W+x]))
			for c := 0; c < cellWidth; c++ {
				v.screen.SetContent(x*cellWidth+c, y, ' ', nil, style)
			}
		}
	}
	cursor := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	v.screen.SetContent(v.cx*cellWidth, v.cy, '[', nil, cursor)
	v.screen.SetContent(v.cx*cellWidth+1, v.cy, ']', nil, cursor)

	v.drawText(0, size.H, v.statusLine(), tcell.StyleDefault.Foreground(tcell.ColorSilver))
	v.drawText(0, size.H+1, "arrows/hjkl move  space designate  p pause  n step  r reset  q quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	v.screen.Show()
}

func (v *Viewer) statusLine() string {
	state := "growing"
	switch {
	case v.world.IsComplete():
		state = "complete"
	case v.paused:
		state = "paused"
	}
	return fmt.Sprintf("%s  tick %d  origins %d  patches %d  %s",
		v.world.Name(), v.world.Tick(), v.world.OriginCount(), v.world.PatchCount(), state)
}

func (v *Viewer) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func paletteColor(palette []color.RGBA, idx uint8) tcell.Color {
	if len(palette) == 0 {
		return tcell.ColorBlack
	}
	if int(idx) >= len(palette) {
		idx = uint8(len(palette) - 1)
	}
	c := palette[idx]
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
