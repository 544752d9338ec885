package edit

import (
	"sync"

	"epicgraph/internal/geom"
	"epicgraph/internal/graph"
)

// Result is the outcome of a Controller edit. Positions is the layout
// snapshot taken before the edit; callers install it as coordinate overrides
// so nodes stay put while the graph changes under them.
type Result struct {
	Graph     graph.Graph
	Positions map[string]geom.Point
	Applied   bool
}

// Controller holds the graph being edited and the positions of its last
// layout. It is safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	current   graph.Graph
	positions map[string]geom.Point
}

// NewController starts editing a copy of g.
func NewController(g graph.Graph) *Controller {
	return &Controller{current: graph.Clone(g), positions: map[string]geom.Point{}}
}

// Graph returns a copy of the current graph.
func (c *Controller) Graph() graph.Graph {
	c.mu.Lock()
	defer c.mu.Unlock()
	return graph.Clone(c.current)
}

// Reset replaces the current graph, dropping any edits.
func (c *Controller) Reset(g graph.Graph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = graph.Clone(g)
}

// SetPositions records the node centers of the latest layout.
func (c *Controller) SetPositions(p map[string]geom.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.positions = clonePositions(p)
}

// CanAddEdge checks an edge against the current graph.
func (c *Controller) CanAddEdge(sourceID, targetID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CanAddEdge(c.current, sourceID, targetID)
}

// CreateEdge adds sourceID->targetID to the current graph.
func (c *Controller) CreateEdge(sourceID, targetID string) Result {
	return c.apply(func(g graph.Graph) (graph.Graph, bool) {
		return CreateEdge(g, sourceID, targetID)
	})
}

// DeleteEdge removes sourceID->targetID from the current graph.
func (c *Controller) DeleteEdge(sourceID, targetID string) Result {
	return c.apply(func(g graph.Graph) (graph.Graph, bool) {
		return DeleteEdge(g, sourceID, targetID)
	})
}

// RetargetEdge moves sourceID->oldTargetID to sourceID->newTargetID.
func (c *Controller) RetargetEdge(sourceID, oldTargetID, newTargetID string) Result {
	return c.apply(func(g graph.Graph) (graph.Graph, bool) {
		return RetargetEdge(g, sourceID, oldTargetID, newTargetID)
	})
}

func (c *Controller) apply(op func(graph.Graph) (graph.Graph, bool)) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, ok := op(c.current)
	if ok {
		c.current = next
	}
	return Result{
		Graph:     graph.Clone(c.current),
		Positions: clonePositions(c.positions),
		Applied:   ok,
	}
}

func clonePositions(p map[string]geom.Point) map[string]geom.Point {
	out := make(map[string]geom.Point, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
