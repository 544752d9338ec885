package layout

// exactSearch is a branch and bound over the orders of every layer, taken
// top-down. Crossings between layers k-1 and k are fixed once layer k is
// complete, so the accumulated count only grows along a branch.
type exactSearch struct {
	l          *layered
	best       int
	bestLayers [][]int
}

// minimizeExact replaces the current order with a crossing-minimal one and
// returns the count. The current order is the initial upper bound; it is kept
// unless a strictly better order exists.
func (l *layered) minimizeExact() int {
	s := &exactSearch{l: l, best: l.crossings()}
	initial := l.snapshot()
	if s.best > 0 {
		s.layer(0, 0)
	}
	if s.bestLayers != nil {
		l.restore(s.bestLayers)
	} else {
		l.restore(initial)
	}
	return s.best
}

// layerSearch holds the state for ordering one layer.
type layerSearch struct {
	k       int
	members []int
	// cost[i][j] counts crossings with the layer above when members[i] is
	// placed left of members[j].
	cost [][]int
	// twin[i] is the previous member with the same neighbors, or -1. Twins are
	// interchangeable, so they are only placed in index order.
	twin  []int
	used  []bool
	order []int
}

func (s *exactSearch) layer(k, acc int) {
	l := s.l
	if k == len(l.layers) {
		if acc < s.best {
			s.best = acc
			s.bestLayers = l.snapshot()
		}
		return
	}
	members := append([]int(nil), l.layers[k]...)
	m := len(members)
	ls := &layerSearch{
		k:       k,
		members: members,
		cost:    make([][]int, m),
		twin:    make([]int, m),
		used:    make([]bool, m),
		order:   make([]int, 0, m),
	}
	for i, vi := range members {
		ls.cost[i] = make([]int, m)
		for j, vj := range members {
			if i == j {
				continue
			}
			for _, a := range l.up[vi] {
				for _, b := range l.up[vj] {
					if l.pos[a] > l.pos[b] {
						ls.cost[i][j]++
					}
				}
			}
		}
		ls.twin[i] = -1
		for j := i - 1; j >= 0; j-- {
			if sameInts(l.up[vi], l.up[members[j]]) && sameInts(l.down[vi], l.down[members[j]]) {
				ls.twin[i] = j
				break
			}
		}
	}
	for _, v := range members {
		l.pos[v] = -1
	}
	s.place(ls, acc)
}

func (s *exactSearch) place(ls *layerSearch, acc int) {
	l := s.l
	m := len(ls.members)
	if len(ls.order) == m {
		for i, idx := range ls.order {
			l.layers[ls.k][i] = ls.members[idx]
		}
		s.layer(ls.k+1, acc)
		return
	}
	for i := range m {
		if ls.used[i] || (ls.twin[i] >= 0 && !ls.used[ls.twin[i]]) {
			continue
		}
		add := 0
		for j := range m {
			if j != i && !ls.used[j] {
				add += ls.cost[i][j]
			}
		}
		ls.used[i] = true
		l.pos[ls.members[i]] = len(ls.order)
		ls.order = append(ls.order, i)
		if acc+add+ls.remainingBound()+s.nextBound(ls.k) < s.best {
			s.place(ls, acc+add)
		}
		ls.order = ls.order[:len(ls.order)-1]
		l.pos[ls.members[i]] = -1
		ls.used[i] = false
	}
}

// remainingBound is the least crossing count the unplaced members can still
// add against the layer above.
func (ls *layerSearch) remainingBound() int {
	lb := 0
	for i := range ls.members {
		if ls.used[i] {
			continue
		}
		for j := i + 1; j < len(ls.members); j++ {
			if !ls.used[j] {
				lb += min(ls.cost[i][j], ls.cost[j][i])
			}
		}
	}
	return lb
}

// nextBound is a lower bound on crossings between layer k and k+1 given the
// partial order of layer k. Placed vertices precede unplaced ones; the order
// between two unplaced vertices is unknown and not counted.
func (s *exactSearch) nextBound(k int) int {
	l := s.l
	if k+1 >= len(l.layers) {
		return 0
	}
	next := l.layers[k+1]
	lb := 0
	for i, x := range next {
		for _, y := range next[i+1:] {
			before, after := 0, 0
			for _, a := range l.up[x] {
				for _, b := range l.up[y] {
					pa, pb := l.pos[a], l.pos[b]
					switch {
					case a == b, pa < 0 && pb < 0:
					case pb < 0 || (pa >= 0 && pa < pb):
						before++
					default:
						after++
					}
				}
			}
			lb += min(before, after)
		}
	}
	return lb
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
