package layout

// anchorDepths returns, for each issue, its distance in blocking edges from
// the nearest anchor (an issue that blocks nothing in the graph). Issues
// that reach no anchor get -1.
func anchorDepths(d *dag) []int {
	depth := make([]int, d.size())
	var queue []int
	for v := range depth {
		if len(d.children[v]) == 0 {
			queue = append(queue, v)
			continue
		}
		depth[v] = -1
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, p := range d.parents[v] {
			if depth[p] == -1 {
				depth[p] = depth[v] + 1
				queue = append(queue, p)
			}
		}
	}
	return depth
}

func zFor(depth int, step float64) float64 {
	if depth <= 0 {
		return 0
	}
	return -float64(depth) * step
}
