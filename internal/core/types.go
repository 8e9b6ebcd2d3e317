package core

// Size describes the dimensions of a display raster in cells.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells covered by the size.
func (s Size) Cells() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}

// Sim is the contract a renderer consumes. Cells returns a display buffer of
// Size().W*Size().H palette indices in row-major order.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Completer is implemented by sims that can reach a terminal state.
type Completer interface {
	IsComplete() bool
}
