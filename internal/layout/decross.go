package layout

import "sort"

const (
	barycenterSweeps = 4
	refinePasses     = 8
	// maxPermuteWidth bounds the layers searched exhaustively; wider layers
	// fall back to sifting.
	maxPermuteWidth = 6
)

// decross reorders layers to reduce crossings and returns the final count.
// Barycenter sweeps always run. When exhaustive is set, local refinement
// tightens the bound and an exact search over all layers then makes the
// order crossing-minimal. The returned order is never worse than the
// initial one.
func (l *layered) decross(exhaustive bool) int {
	best := l.snapshot()
	bestCrossings := l.crossings()

	for range barycenterSweeps {
		for ly := 1; ly < len(l.layers); ly++ {
			l.barycenterOrder(ly, l.up)
		}
		for ly := len(l.layers) - 2; ly >= 0; ly-- {
			l.barycenterOrder(ly, l.down)
		}
		if c := l.crossings(); c < bestCrossings {
			best, bestCrossings = l.snapshot(), c
		}
	}
	l.restore(best)

	if exhaustive && bestCrossings > 0 {
		for range refinePasses {
			improved := false
			for ly := range l.layers {
				improved = l.improveLayer(ly) || improved
			}
			for ly := len(l.layers) - 1; ly >= 0; ly-- {
				improved = l.improveLayer(ly) || improved
			}
			if !improved {
				break
			}
		}
		return l.minimizeExact()
	}
	return l.crossings()
}

// barycenterOrder sorts layer ly by the mean position of each vertex's
// neighbors. Vertices without neighbors keep their current position as key.
func (l *layered) barycenterOrder(ly int, neighbors [][]int) {
	layer := l.layers[ly]
	if len(layer) <= 1 {
		return
	}
	bary := make(map[int]float64, len(layer))
	for _, v := range layer {
		nbrs := neighbors[v]
		if len(nbrs) == 0 {
			bary[v] = float64(l.pos[v])
			continue
		}
		sum := 0.0
		for _, n := range nbrs {
			sum += float64(l.pos[n])
		}
		bary[v] = sum / float64(len(nbrs))
	}
	sort.SliceStable(layer, func(i, j int) bool {
		return bary[layer[i]] < bary[layer[j]]
	})
	for i, v := range layer {
		l.pos[v] = i
	}
}

// localCrossings counts crossings on both sides of layer ly, the only part
// of the total that reordering ly can change.
func (l *layered) localCrossings(ly int) int {
	return l.crossingsBetween(ly-1) + l.crossingsBetween(ly)
}

// improveLayer finds a better order for one layer. It reports whether the
// crossing count strictly decreased.
func (l *layered) improveLayer(ly int) bool {
	layer := l.layers[ly]
	if len(layer) < 2 {
		return false
	}
	base := l.localCrossings(ly)
	if base == 0 {
		return false
	}
	if len(layer) <= maxPermuteWidth {
		return l.permuteLayer(ly, base)
	}
	return l.siftLayer(ly, base)
}

func (l *layered) permuteLayer(ly, base int) bool {
	layer := l.layers[ly]
	best := append([]int(nil), layer...)
	bestCost := base
	permute(layer, func() bool {
		for i, v := range layer {
			l.pos[v] = i
		}
		if c := l.localCrossings(ly); c < bestCost {
			bestCost = c
			copy(best, layer)
		}
		return bestCost > 0
	})
	copy(layer, best)
	for i, v := range layer {
		l.pos[v] = i
	}
	return bestCost < base
}

// siftLayer moves each vertex to the position in its layer that minimizes
// local crossings.
func (l *layered) siftLayer(ly, base int) bool {
	layer := l.layers[ly]
	current := base
	for _, v := range append([]int(nil), layer...) {
		from := l.pos[v]
		bestAt, bestCost := from, current
		for to := range layer {
			moveWithin(layer, l.pos[v], to)
			for i, u := range layer {
				l.pos[u] = i
			}
			if c := l.localCrossings(ly); c < bestCost {
				bestAt, bestCost = to, c
			}
		}
		moveWithin(layer, l.pos[v], bestAt)
		for i, u := range layer {
			l.pos[u] = i
		}
		current = bestCost
	}
	return current < base
}

// moveWithin moves the element at index from to index to, shifting the
// elements in between.
func moveWithin(s []int, from, to int) {
	if from == to {
		return
	}
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
}

// permute visits every permutation of s in place (Heap's algorithm), calling
// visit after each one. Returning false from visit stops early.
func permute(s []int, visit func() bool) {
	c := make([]int, len(s))
	if !visit() {
		return
	}
	for i := 1; i < len(s); {
		if c[i] < i {
			if i%2 == 0 {
				s[0], s[i] = s[i], s[0]
			} else {
				s[c[i]], s[i] = s[i], s[c[i]]
			}
			if !visit() {
				return
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
}
