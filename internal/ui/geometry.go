package ui

import "crimson-sprawl/internal/growth"

// Ring is an origin frontier in screen space.
type Ring struct {
	CX, CY, R float32
	State     RingState
}

// RingState selects the colour of a frontier ring.
type RingState uint8

const (
	RingActive RingState = iota
	RingCapped
	RingStarved
)

// Rings projects every origin frontier of w onto a screen drawn at scale
// pixels per lattice cell.
func Rings(w *growth.World, scale int) []Ring {
	if scale <= 0 {
		scale = 1
	}
	cell := w.Lattice().CellSize
	var out []Ring
	w.Origins(func(_ growth.OriginID, o growth.Origin) bool {
		x, y := w.RasterCell(o.Position)
		r := Ring{
			CX: (float32(x) + 0.5) * float32(scale),
			CY: (float32(y) + 0.5) * float32(scale),
			R:  float32(o.Radius/cell) * float32(scale),
		}
		switch {
		case o.Starved:
			r.State = RingStarved
		case o.ExpansionComplete:
			r.State = RingCapped
		}
		out = append(out, r)
		return true
	})
	return out
}

// ScreenToRaster maps a screen pixel to raster coordinates. ok is false
// outside the raster.
func ScreenToRaster(w *growth.World, scale, sx, sy int) (x, y int, ok bool) {
	if scale <= 0 || sx < 0 || sy < 0 {
		return 0, 0, false
	}
	x, y = sx/scale, sy/scale
	size := w.Size()
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}
