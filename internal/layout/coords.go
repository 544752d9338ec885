package layout

import "math"

const balancePasses = 4

// assignSlots gives every vertex a horizontal slot in node-width units.
// Slots keep the layer order, stay at least 1 apart and sit on the half-slot
// grid. The leftmost issue sits at slot 0.
func (l *layered) assignSlots() []float64 {
	x := make([]float64, len(l.layerOf))
	for v := range x {
		x[v] = float64(l.pos[v])
	}
	for range balancePasses {
		for ly := 1; ly < len(l.layers); ly++ {
			balanceLayer(l.layers[ly], l.up, x)
		}
		for ly := len(l.layers) - 2; ly >= 0; ly-- {
			balanceLayer(l.layers[ly], l.down, x)
		}
	}

	if l.real == 0 {
		return x
	}
	lowest := math.Inf(1)
	for _, v := range x[:l.real] {
		lowest = math.Min(lowest, v)
	}
	for v := range x {
		x[v] -= lowest
	}
	return x
}

// balanceLayer pulls each vertex toward the mean slot of its neighbors. Two
// placements honoring the minimum separation are built, one packing left to
// right and one right to left, and their average is used.
func balanceLayer(layer []int, neighbors [][]int, x []float64) {
	n := len(layer)
	if n == 0 {
		return
	}
	desired := make([]float64, n)
	for i, v := range layer {
		nbrs := neighbors[v]
		if len(nbrs) == 0 {
			desired[i] = x[v]
			continue
		}
		sum := 0.0
		for _, u := range nbrs {
			sum += x[u]
		}
		desired[i] = sum / float64(len(nbrs))
	}

	left := make([]float64, n)
	for i := range layer {
		left[i] = desired[i]
		if i > 0 && left[i] < left[i-1]+1 {
			left[i] = left[i-1] + 1
		}
	}
	right := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		right[i] = desired[i]
		if i < n-1 && right[i] > right[i+1]-1 {
			right[i] = right[i+1] - 1
		}
	}
	for i, v := range layer {
		x[v] = roundHalf((left[i] + right[i]) / 2)
	}
}

func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
