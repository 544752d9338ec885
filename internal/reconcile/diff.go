package reconcile

import "epicgraph/internal/graph"

// ComputePendingOps returns the ops that turn baseline into current.
//
// Edges are compared as sets of blocker->blocked pairs. When a source loses
// exactly one edge and gains exactly one, the pair is reported as a single
// OpRetarget; sources with more changes on either side get plain creates and
// deletes. Retargets come first, then creates, then deletes. Creates and
// retargets follow current's order, deletes follow baseline's.
func ComputePendingOps(baseline, current graph.Graph) []Op {
	before := graph.EdgeSet(baseline)
	after := graph.EdgeSet(current)

	creates := difference(graph.Edges(current), before)
	deletes := difference(graph.Edges(baseline), after)

	created := countBySource(creates)
	deleted := countBySource(deletes)
	paired := func(source string) bool {
		return created[source] == 1 && deleted[source] == 1
	}
	oldTarget := make(map[string]string)
	for _, e := range deletes {
		if paired(e.SourceID) {
			oldTarget[e.SourceID] = e.TargetID
		}
	}

	var retargets, plainCreates, plainDeletes []Op
	for _, e := range creates {
		if paired(e.SourceID) {
			retargets = append(retargets, Retarget(e.SourceID, oldTarget[e.SourceID], e.TargetID))
			continue
		}
		plainCreates = append(plainCreates, Create(e))
	}
	for _, e := range deletes {
		if !paired(e.SourceID) {
			plainDeletes = append(plainDeletes, Delete(e))
		}
	}

	ops := make([]Op, 0, len(retargets)+len(plainCreates)+len(plainDeletes))
	ops = append(ops, retargets...)
	ops = append(ops, plainCreates...)
	return append(ops, plainDeletes...)
}

// difference returns the edges of list missing from other, deduplicated and
// in list order.
func difference(list []graph.Edge, other map[graph.Edge]struct{}) []graph.Edge {
	seen := make(map[graph.Edge]bool)
	var out []graph.Edge
	for _, e := range list {
		if _, ok := other[e]; ok || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func countBySource(edges []graph.Edge) map[string]int {
	counts := make(map[string]int)
	for _, e := range edges {
		counts[e.SourceID]++
	}
	return counts
}

// ApplyOp folds op into g and returns the new graph. Ops naming a target that
// is not in g leave it unchanged. No cycle check is made: ops come from a
// diff whose current side is already acyclic.
func ApplyOp(g graph.Graph, op Op) graph.Graph {
	out := graph.Clone(g)
	idx := graph.Index(out)
	switch op.Kind {
	case OpCreate:
		addParent(out, idx, op.Edge.TargetID, op.Edge.SourceID)
	case OpDelete:
		removeParent(out, idx, op.Edge.TargetID, op.Edge.SourceID)
	case OpRetarget:
		removeParent(out, idx, op.OldTargetID, op.Edge.SourceID)
		addParent(out, idx, op.Edge.TargetID, op.Edge.SourceID)
	}
	return out
}

func addParent(g graph.Graph, idx map[string]int, target, parent string) {
	i, ok := idx[target]
	if !ok || g[i].HasParent(parent) {
		return
	}
	g[i].ParentIDs = append(g[i].ParentIDs, parent)
}

func removeParent(g graph.Graph, idx map[string]int, target, parent string) {
	i, ok := idx[target]
	if !ok {
		return
	}
	kept := make([]string, 0, len(g[i].ParentIDs))
	for _, p := range g[i].ParentIDs {
		if p != parent {
			kept = append(kept, p)
		}
	}
	g[i].ParentIDs = kept
}
