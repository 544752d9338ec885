package ui

import (
	"math"

	"epicgraph/internal/geom"
	"epicgraph/internal/layout"
)

const (
	boxCols = 18
	boxRows = 3
)

// projection maps layout coordinates to terminal cells. A node box is
// boxCols x boxRows cells; gaps scale with it.
type projection struct {
	minX, minY float64
	sx, sy     float64
	panCol     int
	panRow     int
}

func newProjection(m layout.Metrics, panCol, panRow int) projection {
	p := projection{minX: m.MinX, minY: m.MinY, sx: 0.1, sy: 0.05, panCol: panCol, panRow: panRow}
	if m.NodeWidth > 0 {
		p.sx = boxCols / m.NodeWidth
	}
	if m.NodeHeight > 0 {
		p.sy = boxRows / m.NodeHeight
	}
	return p
}

// cell returns the terminal cell of layout point pt.
func (p projection) cell(pt geom.Point) (int, int) {
	col := int(math.Round((pt.X-p.minX)*p.sx)) - p.panCol
	row := int(math.Round((pt.Y-p.minY)*p.sy)) - p.panRow
	return col, row
}

// point is the layout point at the center of a terminal cell.
func (p projection) point(col, row int) geom.Point {
	return geom.Point{
		X: float64(col+p.panCol)/p.sx + p.minX,
		Y: float64(row+p.panRow)/p.sy + p.minY,
	}
}

// boxOrigin is the top-left cell of the box of a node centered on pt.
func (p projection) boxOrigin(pt geom.Point) (int, int) {
	col, row := p.cell(pt)
	return col - boxCols/2, row - boxRows/2
}

// extent is the size in cells of the whole layout.
func (p projection) extent(m layout.Metrics) (int, int) {
	return int(math.Ceil(m.Width*p.sx)) + 1, int(math.Ceil(m.Height*p.sy)) + 1
}
