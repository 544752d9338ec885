package interact

import (
	"math"

	"epicgraph/internal/geom"
	"epicgraph/internal/layout"
)

// DefaultLinkTolerance is how far from a link, in layout units, a pointer
// still counts as over it.
const DefaultLinkTolerance = 6.0

// HitNode returns the node whose box contains p. When boxes overlap, the one
// nearest the viewer (highest Z, then last in order) wins.
func HitNode(l layout.Layout, p geom.Point) (layout.Node, bool) {
	halfW, halfH := l.Metrics.NodeWidth/2, l.Metrics.NodeHeight/2
	var best layout.Node
	found := false
	for _, n := range l.Nodes {
		box := geom.Rect{Center: n.Center(), HalfW: halfW, HalfH: halfH}
		if !box.Contains(p) {
			continue
		}
		if !found || n.Z >= best.Z {
			best, found = n, true
		}
	}
	return best, found
}

// HitLink returns the link closest to p within tolerance.
func HitLink(l layout.Layout, p geom.Point, tolerance float64) (layout.Link, bool) {
	var best layout.Link
	bestDist := math.Inf(1)
	for _, link := range l.Links {
		d := geom.DistanceToSegment(p, link.Points[0], link.Points[1])
		if d <= tolerance && d < bestDist {
			best, bestDist = link, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// TargetAt resolves what is under p. Nodes take precedence over links.
func TargetAt(l layout.Layout, p geom.Point) Target {
	if n, ok := HitNode(l, p); ok {
		return Target{NodeID: n.ID}
	}
	if link, ok := HitLink(l, p, DefaultLinkTolerance); ok {
		return Target{Link: &LinkRef{SourceID: link.SourceID, TargetID: link.TargetID}}
	}
	return Target{}
}
