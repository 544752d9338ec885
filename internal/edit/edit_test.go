package edit

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epicgraph/internal/geom"
	"epicgraph/internal/graph"
)

func issue(id string, parents ...string) graph.Issue {
	if parents == nil {
		parents = []string{}
	}
	return graph.Issue{ID: id, Ref: "ref-" + id, ParentIDs: parents}
}

func triangle() graph.Graph {
	return graph.Graph{issue("1"), issue("2", "1"), issue("3", "1", "2")}
}

func TestCanAddEdge(t *testing.T) {
	g := triangle()
	tests := []struct {
		name           string
		source, target string
		want           bool
	}{
		{"back edge closes a cycle", "3", "1", false},
		{"indirect back edge", "2", "1", false},
		{"self loop", "2", "2", false},
		{"duplicate", "1", "2", false},
		{"unknown target", "1", "missing", false},
		{"external source", "ext", "1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAddEdge(g, tt.source, tt.target))
		})
	}

	g = graph.Graph{issue("a"), issue("b")}
	assert.True(t, CanAddEdge(g, "a", "b"))
}

func TestCreateEdgeDoesNotMutateInput(t *testing.T) {
	g := graph.Graph{issue("a"), issue("b")}
	out, ok := CreateEdge(g, "a", "b")
	require.True(t, ok)

	assert.Equal(t, []string{"a"}, out[1].ParentIDs)
	assert.Empty(t, g[1].ParentIDs)

	same, ok := CreateEdge(out, "b", "a")
	assert.False(t, ok)
	assert.Equal(t, out, same)
}

func TestDeleteEdge(t *testing.T) {
	g := triangle()
	out, ok := DeleteEdge(g, "1", "3")
	require.True(t, ok)
	assert.Equal(t, []string{"2"}, out[2].ParentIDs)
	assert.Equal(t, []string{"1", "2"}, g[2].ParentIDs)

	_, ok = DeleteEdge(g, "3", "1")
	assert.False(t, ok)
	_, ok = DeleteEdge(g, "1", "nope")
	assert.False(t, ok)
}

func TestRetargetEdge(t *testing.T) {
	g := graph.Graph{issue("a"), issue("b", "a"), issue("c")}

	out, ok := RetargetEdge(g, "a", "b", "c")
	require.True(t, ok)
	assert.Empty(t, out[1].ParentIDs)
	assert.Equal(t, []string{"a"}, out[2].ParentIDs)
	assert.Equal(t, []string{"a"}, g[1].ParentIDs)

	_, ok = RetargetEdge(g, "a", "b", "b")
	assert.False(t, ok)
	_, ok = RetargetEdge(g, "a", "c", "b")
	assert.False(t, ok, "edge a->c does not exist")
}

func TestRetargetChecksWithoutTheMovedEdge(t *testing.T) {
	// a->b->c plus a->c. Moving a->c onto b is a duplicate, moving b->c back
	// onto a would close a cycle through a->b.
	g := graph.Graph{issue("a"), issue("b", "a"), issue("c", "b", "a")}

	_, ok := RetargetEdge(g, "a", "c", "b")
	assert.False(t, ok)
	_, ok = RetargetEdge(g, "b", "c", "a")
	assert.False(t, ok)

	// x->y retargeted to z where z only reached x through the moved edge.
	g = graph.Graph{issue("x"), issue("y", "x"), issue("z")}
	out, ok := RetargetEdge(g, "x", "y", "z")
	require.True(t, ok)
	assert.True(t, CanAddEdge(out, "y", "x"))
}

func TestRandomEditsStayAcyclic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 30; trial++ {
		n := 3 + rng.IntN(10)
		g := make(graph.Graph, n)
		for i := range g {
			g[i] = issue(fmt.Sprintf("n%d", i))
		}
		for step := 0; step < 80; step++ {
			s := g[rng.IntN(n)].ID
			d := g[rng.IntN(n)].ID
			switch rng.IntN(3) {
			case 0:
				g, _ = CreateEdge(g, s, d)
			case 1:
				g, _ = DeleteEdge(g, s, d)
			default:
				g, _ = RetargetEdge(g, s, d, g[rng.IntN(n)].ID)
			}
			require.NoError(t, graph.Validate(g), "trial %d step %d", trial, step)
		}
	}
}

func TestControllerKeepsPositionsAcrossEdits(t *testing.T) {
	c := NewController(graph.Graph{issue("a"), issue("b")})
	c.SetPositions(map[string]geom.Point{"a": {X: 0, Y: 0}, "b": {X: 200, Y: 0}})

	res := c.CreateEdge("a", "b")
	require.True(t, res.Applied)
	assert.Equal(t, []string{"a"}, res.Graph[1].ParentIDs)
	assert.Equal(t, geom.Point{X: 200, Y: 0}, res.Positions["b"])

	res.Positions["b"] = geom.Point{X: -1}
	res.Graph[1].ParentIDs[0] = "mutated"
	assert.Equal(t, []string{"a"}, c.Graph()[1].ParentIDs)

	res = c.CreateEdge("b", "a")
	assert.False(t, res.Applied)
	assert.False(t, c.CanAddEdge("b", "a"))
	assert.Equal(t, geom.Point{X: 200, Y: 0}, res.Positions["b"])

	res = c.RetargetEdge("a", "b", "a")
	assert.False(t, res.Applied)
	res = c.DeleteEdge("a", "b")
	assert.True(t, res.Applied)
	assert.Empty(t, res.Graph[1].ParentIDs)

	c.Reset(graph.Graph{issue("z")})
	assert.Equal(t, []string{"z"}, c.Graph().IDs())
}
