package layout

// layered is the proper layered graph used for ordering and coordinates.
// Vertices [0, real) are the issues in graph order; the rest are virtual
// vertices splitting edges that span more than one layer.
type layered struct {
	real    int
	layerOf []int
	layers  [][]int
	up      [][]int
	down    [][]int
	// pos is each vertex's index inside its layer.
	pos []int
}

// buildLayers ranks vertices by longest path from the roots and inserts
// virtual vertices so every edge joins adjacent layers.
func buildLayers(d *dag) *layered {
	n := d.size()
	l := &layered{
		real:    n,
		layerOf: make([]int, n),
		up:      make([][]int, n),
		down:    make([][]int, n),
	}
	for _, v := range d.order {
		for _, p := range d.parents[v] {
			if l.layerOf[p]+1 > l.layerOf[v] {
				l.layerOf[v] = l.layerOf[p] + 1
			}
		}
	}

	for v := 0; v < n; v++ {
		for _, p := range d.parents[v] {
			prev := p
			for ly := l.layerOf[p] + 1; ly < l.layerOf[v]; ly++ {
				virt := l.addVirtual(ly)
				l.link(prev, virt)
				prev = virt
			}
			l.link(prev, v)
		}
	}

	depth := 0
	for _, ly := range l.layerOf {
		if ly+1 > depth {
			depth = ly + 1
		}
	}
	l.layers = make([][]int, depth)
	for v, ly := range l.layerOf {
		l.layers[ly] = append(l.layers[ly], v)
	}
	l.pos = make([]int, len(l.layerOf))
	l.reindex()
	return l
}

func (l *layered) addVirtual(layer int) int {
	l.layerOf = append(l.layerOf, layer)
	l.up = append(l.up, nil)
	l.down = append(l.down, nil)
	return len(l.layerOf) - 1
}

func (l *layered) link(upper, lower int) {
	l.down[upper] = append(l.down[upper], lower)
	l.up[lower] = append(l.up[lower], upper)
}

func (l *layered) isVirtual(v int) bool {
	return v >= l.real
}

func (l *layered) reindex() {
	for _, layer := range l.layers {
		for i, v := range layer {
			l.pos[v] = i
		}
	}
}

// crossingsBetween counts edge crossings between layer upper and upper+1.
func (l *layered) crossingsBetween(upper int) int {
	if upper < 0 || upper+1 >= len(l.layers) {
		return 0
	}
	type span struct{ a, b int }
	var spans []span
	for _, u := range l.layers[upper] {
		for _, v := range l.down[u] {
			spans = append(spans, span{l.pos[u], l.pos[v]})
		}
	}
	count := 0
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			if (spans[i].a-spans[j].a)*(spans[i].b-spans[j].b) < 0 {
				count++
			}
		}
	}
	return count
}

func (l *layered) crossings() int {
	total := 0
	for ly := 0; ly+1 < len(l.layers); ly++ {
		total += l.crossingsBetween(ly)
	}
	return total
}

func (l *layered) snapshot() [][]int {
	out := make([][]int, len(l.layers))
	for i, layer := range l.layers {
		out[i] = append([]int(nil), layer...)
	}
	return out
}

func (l *layered) restore(layers [][]int) {
	for i := range l.layers {
		copy(l.layers[i], layers[i])
	}
	l.reindex()
}
