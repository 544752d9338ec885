// Package layout places the issues of a dependency graph on a layered grid.
//
// Compute runs the whole pipeline: stratify, rank with virtual vertices,
// crossing minimization, slot assignment, anchor depth, overrides, overlap
// opacity, link routing and colors. Results are pure functions of the graph,
// the settings and the override map, which is what makes Cache safe.
package layout

import (
	"math"
	"time"

	"epicgraph/internal/debug"
	"epicgraph/internal/geom"
	"epicgraph/internal/graph"
	"epicgraph/internal/overrides"
)

// Node is a placed issue. X and Y are the center of the node box.
type Node struct {
	ID         string      `json:"id"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Z          float64     `json:"z"`
	Opacity    float64     `json:"opacity"`
	Color      string      `json:"color"`
	Issue      graph.Issue `json:"issue"`
	Layer      int         `json:"layer"`
	Overridden bool        `json:"overridden,omitempty"`
}

// Center returns the node position as a point.
func (n Node) Center() geom.Point {
	return geom.Point{X: n.X, Y: n.Y}
}

// Arrow is the head of a link: its tip and unit direction.
type Arrow struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	DirX float64 `json:"dirX"`
	DirY float64 `json:"dirY"`
}

// Link is a drawn blocking edge from SourceID (blocker) to TargetID.
type Link struct {
	SourceID    string        `json:"sourceId"`
	TargetID    string        `json:"targetId"`
	Points      [2]geom.Point `json:"points"`
	SourceColor string        `json:"sourceColor"`
	TargetColor string        `json:"targetColor"`
	ArrowColor  string        `json:"arrowColor"`
	Arrow       Arrow         `json:"arrow"`
}

// Metrics describes the extent of a layout. MinX/MinY is the top-left corner
// of the bounding box of all node boxes.
type Metrics struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	MinX       float64 `json:"minX"`
	MinY       float64 `json:"minY"`
	CellWidth  float64 `json:"cellWidth"`
	CellHeight float64 `json:"cellHeight"`
	NodeWidth  float64 `json:"nodeWidth"`
	NodeHeight float64 `json:"nodeHeight"`
	Layers     int     `json:"layers"`
	Crossings  int     `json:"crossings"`
}

// Layout is the result of Compute. Nodes are in graph order.
type Layout struct {
	Nodes   []Node  `json:"nodes"`
	Links   []Link  `json:"links"`
	Metrics Metrics `json:"metrics"`
}

// Node returns the placed node with the given id.
func (l Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Positions snapshots every node center by id.
func (l Layout) Positions() map[string]geom.Point {
	out := make(map[string]geom.Point, len(l.Nodes))
	for _, n := range l.Nodes {
		out[n.ID] = n.Center()
	}
	return out
}

func (l Layout) clone() Layout {
	nodes := make([]Node, len(l.Nodes))
	for i, n := range l.Nodes {
		n.Issue = n.Issue.Clone()
		nodes[i] = n
	}
	return Layout{
		Nodes:   nodes,
		Links:   append([]Link(nil), l.Links...),
		Metrics: l.Metrics,
	}
}

// Compute lays out g. Overrides in ov replace computed positions (snapped to
// the settings grid when Snap is on). Invalid graphs (duplicate ids, cycles)
// fail with CodeGraphConstruction and no partial layout.
func Compute(g graph.Graph, s Settings, ov overrides.Map) (Layout, error) {
	start := time.Now()
	s = s.normalized()

	d, err := stratify(g)
	if err != nil {
		debug.Logf("layout: %v", err)
		return Layout{}, err
	}
	n := d.size()

	lg := buildLayers(d)
	crossings := lg.decross(n <= s.OptimalThreshold)
	slots := lg.assignSlots()
	depths := anchorDepths(d)
	rank := make([]int, n)
	for i, v := range d.order {
		rank[v] = i
	}

	cellW := s.NodeWidth + s.GapX
	cellH := s.NodeHeight + s.GapY
	grid := s.Grid()
	nodes := make([]Node, n)
	for v, iss := range g {
		node := Node{
			ID:    iss.ID,
			X:     slots[v] * cellW,
			Y:     float64(lg.layerOf[v]) * cellH,
			Z:     zFor(depths[v], s.ZStep),
			Color: nodeColor(iss, rank[v], n, s),
			Issue: iss.Clone(),
			Layer: lg.layerOf[v],
		}
		if p, ok := ov[iss.ID]; ok {
			if s.Snap {
				p = grid.Snap(p)
			}
			node.X, node.Y = p.X, p.Y
			node.Overridden = true
		}
		nodes[v] = node
	}
	applyOpacity(nodes)

	links := routeLinks(g, nodes, s)
	if links == nil {
		links = []Link{}
	}
	metrics := measure(nodes, s)
	metrics.CellWidth = cellW
	metrics.CellHeight = cellH
	metrics.Layers = len(lg.layers)
	metrics.Crossings = crossings

	debug.Since("layout", start)
	return Layout{Nodes: nodes, Links: links, Metrics: metrics}, nil
}

func measure(nodes []Node, s Settings) Metrics {
	m := Metrics{NodeWidth: s.NodeWidth, NodeHeight: s.NodeHeight}
	if len(nodes) == 0 {
		return m
	}
	halfW, halfH := s.NodeWidth/2, s.NodeHeight/2
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X-halfW)
		minY = math.Min(minY, n.Y-halfH)
		maxX = math.Max(maxX, n.X+halfW)
		maxY = math.Max(maxY, n.Y+halfH)
	}
	m.MinX, m.MinY = minX, minY
	m.Width, m.Height = maxX-minX, maxY-minY
	return m
}
