package layout

import (
	"sort"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"epicgraph/internal/graph"
)

// dag is the in-graph blocking structure with vertices indexed by graph
// position. Dangling parent ids are dropped here.
type dag struct {
	issues   graph.Graph
	parents  [][]int
	children [][]int
	// order is a topological order, ties broken by graph position.
	order []int
}

// stratify validates g and orders it topologically. Any failure is fatal
// for the layout.
func stratify(g graph.Graph) (*dag, error) {
	if err := graph.Validate(g); err != nil {
		return nil, constructionError(err)
	}

	idx := graph.Index(g)
	d := &dag{
		issues:   g,
		parents:  make([][]int, len(g)),
		children: make([][]int, len(g)),
	}
	dg := simple.NewDirectedGraph()
	for i := range g {
		dg.AddNode(simple.Node(i))
	}
	for i, iss := range g {
		seen := make(map[int]bool, len(iss.ParentIDs))
		for _, p := range iss.ParentIDs {
			j, ok := idx[p]
			if !ok || seen[j] {
				continue
			}
			seen[j] = true
			d.parents[i] = append(d.parents[i], j)
			d.children[j] = append(d.children[j], i)
			dg.SetEdge(dg.NewEdge(simple.Node(j), simple.Node(i)))
		}
	}

	sorted, err := topo.SortStabilized(dg, byGraphPosition)
	if err != nil {
		return nil, constructionError(err)
	}
	d.order = make([]int, len(sorted))
	for i, n := range sorted {
		d.order[i] = int(n.ID())
	}
	return d, nil
}

func byGraphPosition(nodes []gonum.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}

func (d *dag) size() int {
	return len(d.issues)
}
