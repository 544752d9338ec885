package overrides

import (
	"math"

	"epicgraph/internal/geom"
)

// Grid is the lattice dragged nodes snap to.
type Grid struct {
	CellWidth  float64
	CellHeight float64
}

// NewGrid returns a grid with cells half the given pitch in each direction.
func NewGrid(pitchX, pitchY float64) Grid {
	return Grid{CellWidth: pitchX / 2, CellHeight: pitchY / 2}
}

// Snap maps p to the nearest lattice point. Axes with a non-positive cell size
// are left unchanged. Snap(Snap(p)) == Snap(p).
func (g Grid) Snap(p geom.Point) geom.Point {
	return geom.Point{X: snapAxis(p.X, g.CellWidth), Y: snapAxis(p.Y, g.CellHeight)}
}

func snapAxis(v, cell float64) float64 {
	if cell <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v/cell) * cell
}
