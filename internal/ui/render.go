package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"epicgraph/internal/graph"
	"epicgraph/internal/interact"
	"epicgraph/internal/layout"
)

// scene is everything renderGraph needs besides the canvas.
type scene struct {
	layout   layout.Layout
	proj     projection
	selected string
	link     *interact.LinkRef
	mode     interact.Mode
}

// renderGraph draws links first so node boxes sit on top of them.
func renderGraph(c *Canvas, sc scene) {
	for _, l := range sc.layout.Links {
		style := styleLink.Foreground(lipgloss.Color(l.SourceColor))
		if sc.link != nil && sc.link.SourceID == l.SourceID && sc.link.TargetID == l.TargetID {
			style = styleLinkSelected
		}
		drawLink(c, sc.proj, l, style)
	}
	for _, n := range sc.layout.Nodes {
		if n.ID == sc.selected {
			continue
		}
		drawNode(c, sc.proj, n, false, interact.Affordances{})
	}
	// The selected node is drawn on top.
	if n, ok := sc.layout.Node(sc.selected); ok {
		aff := interact.AffordancesFor(sc.mode, interact.Target{NodeID: n.ID})
		drawNode(c, sc.proj, n, true, aff)
	}
}

func drawNode(c *Canvas, proj projection, n layout.Node, selected bool, aff interact.Affordances) {
	label := nodeLabel(n.Issue)
	if aff.EdgeHandle {
		label = truncate(label, boxCols-4) + " ●"
	}
	style := nodeStyle(n.Color, selected, n.Opacity < 1).Width(boxCols - 2)
	x, y := proj.boxOrigin(n.Center())
	c.DrawBlockAt(x, y, style.Render(truncate(label, boxCols-2)))
}

func nodeLabel(iss graph.Issue) string {
	if iss.Title == "" {
		return iss.ID
	}
	return iss.ID + " " + iss.Title
}

func drawLink(c *Canvas, proj projection, l layout.Link, style lipgloss.Style) {
	x0, y0 := proj.cell(l.Points[0])
	x1, y1 := proj.cell(l.Points[1])
	glyph := lineGlyph(x1-x0, y1-y0)
	plotLine(x0, y0, x1, y1, func(x, y int) {
		c.DrawCell(x, y, glyph, style)
	})
	c.DrawCell(x1, y1, arrowGlyph(l.Arrow), style)
}

// plotLine visits the cells of the segment (x0,y0)-(x1,y1), end excluded.
func plotLine(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for x0 != x1 || y0 != y1 {
		visit(x0, y0)
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func lineGlyph(dx, dy int) string {
	switch {
	case dx == 0:
		return "│"
	case dy == 0:
		return "─"
	case (dx > 0) == (dy > 0):
		return "╲"
	default:
		return "╱"
	}
}

func arrowGlyph(a layout.Arrow) string {
	if math.Abs(a.DirY) >= math.Abs(a.DirX) {
		if a.DirY < 0 {
			return "▲"
		}
		return "▼"
	}
	if a.DirX < 0 {
		return "◀"
	}
	return "▶"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// nearestInDirection picks the node closest to from along (dx, dy), favoring
// nodes straight ahead over ones off to the side.
func nearestInDirection(nodes []layout.Node, from layout.Node, dx, dy float64) (string, bool) {
	best := ""
	bestScore := math.Inf(1)
	for _, n := range nodes {
		if n.ID == from.ID {
			continue
		}
		v := n.Center().Sub(from.Center())
		along := v.X*dx + v.Y*dy
		if along <= 0 {
			continue
		}
		across := math.Abs(v.X*dy - v.Y*dx)
		if score := along + 2*across; score < bestScore {
			best, bestScore = n.ID, score
		}
	}
	return best, best != ""
}

// outgoingLinks lists the links leaving id, in layout order.
func outgoingLinks(l layout.Layout, id string) []layout.Link {
	var out []layout.Link
	for _, link := range l.Links {
		if link.SourceID == id {
			out = append(out, link)
		}
	}
	return out
}
