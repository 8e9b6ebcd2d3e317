//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"crimson-sprawl/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// StatusGroup names the snapshot group rendered as a read-only readout below
// the controls.
const StatusGroup = "Status"

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []hudControl
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string
	hints        []string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: panelTitle(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, hudControl{control: ctrl, value: "--"})
		}
		h.layoutControls()
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// SetHints replaces the key binding lines printed at the bottom of the panel.
func (h *HUD) SetHints(lines ...string) {
	if h == nil {
		return
	}
	h.hints = append(h.hints[:0], lines...)
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached snapshot and handles clicks on the +/- buttons.
// It reports whether the click was consumed by the panel.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return false
	}
	h.snapshot = provider.Parameters()
	h.refreshValues()
	return h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height < minPanelHeight {
		height = minPanelHeight
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBackground)
	y := h.drawControls()
	y = h.drawStatus(y)
	h.drawHints(y)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func panelTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := strings.ReplaceAll(sim.Name(), "-", " ")
	return strings.ToUpper(name[:1]) + name[1:]
}

func (h *HUD) refreshValues() {
	if len(h.controls) == 0 {
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		state.hasValue = false
		state.value = "--"
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			continue
		}
		state.current = parsed
		state.hasValue = true
		if state.control.Type == core.ParamTypeInt {
			state.value = strconv.Itoa(int(parsed))
		} else {
			state.value = formatFloat(state.control, parsed)
		}
	}
}

func (h *HUD) handleInput() bool {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return false
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.adjust(state, -1)
			return true
		}
		if pointInRect(px, my, state.plusRect) {
			h.adjust(state, 1)
			return true
		}
	}
	return true
}

// target returns the value one step in direction, clamped to the control
// bounds, and whether it differs from the current value.
func (state *hudControl) target(direction int) (float64, bool) {
	step := state.control.Step
	if step <= 0 {
		step = 1
		if state.control.Type == core.ParamTypeFloat {
			step = 0.05
		}
	}
	next := core.ClampControl(state.control, state.current+float64(direction)*step)
	if state.control.Type == core.ParamTypeInt {
		next = math.Round(next)
	}
	return next, math.Abs(next-state.current) > 1e-9
}

func (h *HUD) adjust(state *hudControl, direction int) {
	next, ok := state.target(direction)
	if !ok {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil && h.intSetter.SetIntParameter(state.control.Key, int(next)) {
			state.current = next
			state.value = strconv.Itoa(int(next))
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil && h.floatSetter.SetFloatParameter(state.control.Key, next) {
			state.current = next
			state.value = formatFloat(state.control, next)
		}
	}
}

func (h *HUD) canAdjust(state *hudControl, direction int) bool {
	if !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return false
		}
	default:
		return false
	}
	_, ok := state.target(direction)
	return ok
}

func (h *HUD) drawControls() int {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if len(h.controls) == 0 {
		return controlsTop
	}
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, labelColor)

		valueColor := labelColor
		if !state.hasValue {
			valueColor = mutedColor
		}
		valueWidth := text.BoundString(face, state.value).Dx()
		valueX := state.minusRect.Min.X - buttonGap - valueWidth
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}
	return controlsTop + len(h.controls)*lineHeight
}

func (h *HUD) drawStatus(y int) int {
	face := basicfont.Face7x13
	for _, group := range h.snapshot.Groups {
		if group.Name != StatusGroup {
			continue
		}
		y += sectionGap
		text.Draw(h.panel, group.Name, face, panelPadding, y, titleColor)
		for _, param := range group.Params {
			y += statusLine
			text.Draw(h.panel, param.Label, face, panelPadding, y, mutedColor)
			w := text.BoundString(face, param.Value).Dx()
			text.Draw(h.panel, param.Value, face, h.width-panelPadding-w, y, labelColor)
		}
	}
	return y
}

func (h *HUD) drawHints(y int) {
	if len(h.hints) == 0 {
		return
	}
	face := basicfont.Face7x13
	y += sectionGap
	for _, line := range h.hints {
		text.Draw(h.panel, line, face, panelPadding, y, mutedColor)
		y += statusLine
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControl struct {
	control  core.ParameterControl
	value    string
	current  float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	sectionGap     = 24
	statusLine     = 16
	minPanelHeight = 480
	controlsTop    = panelPadding + headerBaseline + 14
)
