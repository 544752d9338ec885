package layout

import "epicgraph/internal/geom"

// applyOpacity makes nodes that share the exact same center translucent so
// stacked nodes stay visible: N coincident nodes each get 1/N.
func applyOpacity(nodes []Node) {
	counts := make(map[geom.Point]int, len(nodes))
	for _, n := range nodes {
		counts[n.Center()]++
	}
	for i := range nodes {
		if c := counts[nodes[i].Center()]; c > 1 {
			nodes[i].Opacity = 1 / float64(c)
		} else {
			nodes[i].Opacity = 1
		}
	}
}
