// Package edit changes the blocking edges of a graph while keeping it acyclic.
//
// Every function here returns a new graph. A rejected edit returns the input
// graph unchanged together with false.
package edit

import (
	"epicgraph/internal/debug"
	"epicgraph/internal/graph"
)

// CanAddEdge reports whether sourceID may start blocking targetID. The edge is
// refused when it would be a self loop, when targetID is not in g, when it
// already exists, or when targetID already blocks sourceID transitively.
func CanAddEdge(g graph.Graph, sourceID, targetID string) bool {
	return rejectReason(g, sourceID, targetID) == ""
}

func rejectReason(g graph.Graph, sourceID, targetID string) string {
	if sourceID == targetID {
		return "self loop"
	}
	target, ok := g.Find(targetID)
	if !ok {
		return "unknown target"
	}
	if target.HasParent(sourceID) {
		return "duplicate edge"
	}
	if graph.IsAncestor(g, sourceID, targetID) {
		return "would create a cycle"
	}
	return ""
}

// CreateEdge adds sourceID to the blockers of targetID.
func CreateEdge(g graph.Graph, sourceID, targetID string) (graph.Graph, bool) {
	if reason := rejectReason(g, sourceID, targetID); reason != "" {
		debug.Logf("edit: create %s->%s rejected: %s", sourceID, targetID, reason)
		return g, false
	}
	out := graph.Clone(g)
	i := graph.Index(out)[targetID]
	out[i].ParentIDs = append(out[i].ParentIDs, sourceID)
	return out, true
}

// DeleteEdge removes sourceID from the blockers of targetID.
func DeleteEdge(g graph.Graph, sourceID, targetID string) (graph.Graph, bool) {
	i, ok := graph.Index(g)[targetID]
	if !ok || !g[i].HasParent(sourceID) {
		debug.Logf("edit: delete %s->%s rejected: no such edge", sourceID, targetID)
		return g, false
	}
	out := graph.Clone(g)
	out[i].ParentIDs = without(out[i].ParentIDs, sourceID)
	return out, true
}

// RetargetEdge moves the edge sourceID->oldTargetID so it points at
// newTargetID. The new edge is checked against the graph with the old edge
// already removed, so moving an edge along its own path is allowed.
func RetargetEdge(g graph.Graph, sourceID, oldTargetID, newTargetID string) (graph.Graph, bool) {
	if oldTargetID == newTargetID {
		return g, false
	}
	removed, ok := DeleteEdge(g, sourceID, oldTargetID)
	if !ok {
		return g, false
	}
	if reason := rejectReason(removed, sourceID, newTargetID); reason != "" {
		debug.Logf("edit: retarget %s->%s to %s rejected: %s", sourceID, oldTargetID, newTargetID, reason)
		return g, false
	}
	i := graph.Index(removed)[newTargetID]
	removed[i].ParentIDs = append(removed[i].ParentIDs, sourceID)
	return removed, true
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
