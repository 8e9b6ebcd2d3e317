package growth

import (
	"image/color"
	"math"

	"crimson-sprawl/internal/core"
)

const (
	displayAgeLevels   = 16
	displayAlphaLevels = 8
	displayGround      = 0
)

var (
	groundColor = color.NRGBA{R: 77, G: 128, B: 77, A: 255}

	// Age ramp anchors: fresh red, half-aged brown, mature black.
	freshColor    = [3]float64{1, 0, 0}
	brownColor    = [3]float64{0.6, 0.3, 0.1}
	growthPalette = buildGrowthPalette()
)

// AgeColor maps a maturity in [0, 1] onto the red -> brown -> black ramp.
func AgeColor(maturity float64) color.NRGBA {
	t := clamp01(maturity)
	var r, g, b float64
	if t < 0.5 {
		k := t * 2
		r = freshColor[0] + (brownColor[0]-freshColor[0])*k
		g = freshColor[1] + (brownColor[1]-freshColor[1])*k
		b = freshColor[2] + (brownColor[2]-freshColor[2])*k
	} else {
		k := (t - 0.5) * 2
		r = brownColor[0] * (1 - k)
		g = brownColor[1] * (1 - k)
		b = brownColor[2] * (1 - k)
	}
	return color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: 255}
}

// DistanceAlpha fades a patch from opaque at its origin to minAlpha at
// fadeDistance and beyond. A non-positive fadeDistance disables the fade.
func DistanceAlpha(distance, fadeDistance, minAlpha float64) float64 {
	if fadeDistance <= 0 {
		return 1
	}
	alpha := 1 - math.Min(distance/fadeDistance, 1)
	return math.Max(alpha, minAlpha)
}

// Size reports the display raster: one cell per lattice cell inside the
// world bounds.
func (w *World) Size() core.Size {
	n := w.rasterHalf()
	return core.Size{W: 2*n + 1, H: 2*n + 1}
}

// Cells exposes the display buffer, rebuilt lazily after changes.
func (w *World) Cells() []uint8 {
	if w.displayDirty {
		w.rebuildDisplay()
	}
	return w.display.Cells()
}

// Palette exposes the colours used for the display buffer.
func (w *World) Palette() []color.RGBA { return growthPalette }

// RasterCell converts a world position to raster coordinates.
func (w *World) RasterCell(p Vec3) (int, int) {
	n := w.rasterHalf()
	k := w.lattice.Cell(p)
	return k.X + n, k.Z + n
}

// RasterToWorld converts raster coordinates to the world position of the
// cell centre on the ground plane.
func (w *World) RasterToWorld(x, y int) Vec3 {
	n := w.rasterHalf()
	return w.lattice.Point(CellKey{X: x - n, Z: y - n}, 0)
}

func (w *World) rasterHalf() int {
	n := int(math.Floor(w.cfg.WorldHalfExtent / w.lattice.CellSize))
	if n < 0 {
		n = 0
	}
	return n
}

func (w *World) rebuildDisplay() {
	w.display.Clear()
	w.Patches(func(v PatchView) bool {
		x, y := w.RasterCell(v.Position)
		w.display.Set(x, y, encodeDisplayValue(v.Maturity, v.Alpha))
		return true
	})
	w.displayDirty = false
}

func encodeDisplayValue(maturity, alpha float64) uint8 {
	age := int(clamp01(maturity) * (displayAgeLevels - 1))
	a := int(math.Round(clamp01(alpha) * (displayAlphaLevels - 1)))
	return uint8(1 + age*displayAlphaLevels + a)
}

func buildGrowthPalette() []color.RGBA {
	palette := make([]color.RGBA, 1+displayAgeLevels*displayAlphaLevels)
	palette[displayGround] = toRGBA(groundColor)
	for age := 0; age < displayAgeLevels; age++ {
		c := AgeColor(float64(age) / float64(displayAgeLevels-1))
		for a := 0; a < displayAlphaLevels; a++ {
			weight := float64(a) / float64(displayAlphaLevels-1)
			palette[1+age*displayAlphaLevels+a] = toRGBA(blendColors(groundColor, c, weight))
		}
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	inv := 1 - overlayWeight
	mix := func(b, o uint8) uint8 {
		return uint8(float64(b)*inv + float64(o)*overlayWeight + 0.5)
	}
	return color.NRGBA{
		R: mix(base.R, overlay.R),
		G: mix(base.G, overlay.G),
		B: mix(base.B, overlay.B),
		A: mix(base.A, overlay.A),
	}
}

func unit8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
