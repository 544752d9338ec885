package layout

import (
	"epicgraph/internal/geom"
	"epicgraph/internal/graph"
)

// routeLinks draws one straight link per in-graph blocking edge, in graph
// order. Each link ends where it meets the target's box grown by the arrow
// size, so the arrow head stays outside the node.
func routeLinks(g graph.Graph, nodes []Node, s Settings) []Link {
	byID := make(map[string]int, len(nodes))
	for i, n := range nodes {
		byID[n.ID] = i
	}
	halfW := s.NodeWidth/2 + s.ArrowSize
	halfH := s.NodeHeight/2 + s.ArrowSize

	var links []Link
	seen := make(map[graph.Edge]bool)
	for _, e := range graph.Edges(g) {
		si, ok := byID[e.SourceID]
		if !ok {
			continue
		}
		ti, ok := byID[e.TargetID]
		if !ok || seen[e] {
			continue
		}
		seen[e] = true
		src, tgt := nodes[si], nodes[ti]
		from, to := src.Center(), tgt.Center()
		end := geom.BoxBoundary(from, to, halfW, halfH)
		dir := to.Sub(from).Unit()
		links = append(links, Link{
			SourceID:    e.SourceID,
			TargetID:    e.TargetID,
			Points:      [2]geom.Point{from, end},
			SourceColor: src.Color,
			TargetColor: tgt.Color,
			ArrowColor:  src.Color,
			Arrow:       Arrow{X: end.X, Y: end.Y, DirX: dir.X, DirY: dir.Y},
		})
	}
	return links
}
