package growth

import "math"

// CellKey addresses a lattice cell by integer coordinates on the X/Z plane.
type CellKey struct {
	X, Z int
}

// Lattice quantizes world coordinates onto square cells anchored at the world
// origin.
type Lattice struct {
	CellSize float64
}

// NewLattice returns a lattice with the given cell size. Non-positive sizes
// fall back to 1.
func NewLattice(cellSize float64) Lattice {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = 1
	}
	return Lattice{CellSize: cellSize}
}

// Snap rounds X and Z to the nearest cell multiple and passes Y through.
func (l Lattice) Snap(p Vec3) Vec3 {
	return l.Point(l.Cell(p), p.Y)
}

// maxCellIndex bounds cell keys so they stay exact as float64 and never
// overflow int.
const maxCellIndex = 1 << 53

// Cell returns the key of the cell nearest to p. Coordinates beyond
// maxCellIndex cells from the origin saturate; NaN maps to 0.
func (l Lattice) Cell(p Vec3) CellKey {
	return CellKey{X: cellIndex(p.X / l.CellSize), Z: cellIndex(p.Z / l.CellSize)}
}

func cellIndex(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxCellIndex:
		return maxCellIndex
	case v < -maxCellIndex:
		return -maxCellIndex
	}
	return int(math.Round(v))
}

// Point returns the world position of a cell at height y.
func (l Lattice) Point(k CellKey, y float64) Vec3 {
	return Vec3{X: float64(k.X) * l.CellSize, Y: y, Z: float64(k.Z) * l.CellSize}
}

// Reach returns how many cells away a point within dist may be keyed.
func (l Lattice) Reach(dist float64) int {
	if dist <= 0 {
		return 0
	}
	return int(math.Ceil(dist / l.CellSize))
}
