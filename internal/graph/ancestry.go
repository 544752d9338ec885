package graph

// ancestry answers reachability queries against a fixed graph.
type ancestry struct {
	byID map[string]*Issue
}

func newAncestry(g Graph) ancestry {
	byID := make(map[string]*Issue, len(g))
	for i := range g {
		if _, dup := byID[g[i].ID]; !dup {
			byID[g[i].ID] = &g[i]
		}
	}
	return ancestry{byID: byID}
}

// isAncestor walks ParentIDs from nodeID looking for candidate. The visited
// set bounds the walk when the data contains a cycle.
func (a ancestry) isAncestor(nodeID, candidate string) bool {
	start, ok := a.byID[nodeID]
	if !ok {
		return false
	}
	visited := map[string]bool{nodeID: true}
	stack := append([]string(nil), start.ParentIDs...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == candidate {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		if iss, ok := a.byID[id]; ok {
			stack = append(stack, iss.ParentIDs...)
		}
	}
	return false
}

// IsAncestor reports whether candidateAncestorID is reachable from nodeID by
// following ParentIDs. Unknown nodeIDs yield false.
func IsAncestor(g Graph, nodeID, candidateAncestorID string) bool {
	return newAncestry(g).isAncestor(nodeID, candidateAncestorID)
}

// RemoveRedundantAncestorEdges drops transitive blockers: for an issue with
// several parents, a parent P is removed when another parent Q already has P
// as an ancestor. The result is a new graph; g is left untouched.
func RemoveRedundantAncestorEdges(g Graph) Graph {
	anc := newAncestry(g)
	out := Clone(g)
	for i := range out {
		parents := g[i].ParentIDs
		if len(parents) < 2 {
			continue
		}
		kept := make([]string, 0, len(parents))
		for _, p := range parents {
			redundant := false
			for _, q := range parents {
				if q != p && anc.isAncestor(q, p) {
					redundant = true
					break
				}
			}
			if !redundant {
				kept = append(kept, p)
			}
		}
		out[i].ParentIDs = kept
	}
	return out
}

// RemoveIssuesMatching removes every issue for which match returns true.
// Issues that were blocked by a removed issue inherit that issue's own
// nearest non-matching blockers, skipping over chains of removed issues, so
// blocking semantics survive hiding intermediate work. It returns the new
// graph and the removed issues in graph order.
func RemoveIssuesMatching(g Graph, match func(Issue) bool) (Graph, []Issue) {
	anc := newAncestry(g)
	removed := make(map[string]bool)
	var removedIssues []Issue
	for _, iss := range g {
		if match(iss) {
			removed[iss.ID] = true
			removedIssues = append(removedIssues, iss.Clone())
		}
	}
	if len(removed) == 0 {
		return Clone(g), nil
	}

	var resolve func(id string, seen map[string]bool) []string
	resolve = func(id string, seen map[string]bool) []string {
		if !removed[id] {
			return []string{id}
		}
		if seen[id] {
			return nil
		}
		seen[id] = true
		var out []string
		for _, p := range anc.byID[id].ParentIDs {
			out = append(out, resolve(p, seen)...)
		}
		return out
	}

	out := make(Graph, 0, len(g)-len(removedIssues))
	for _, iss := range g {
		if removed[iss.ID] {
			continue
		}
		clone := iss.Clone()
		var parents []string
		seenParent := make(map[string]bool)
		for _, p := range iss.ParentIDs {
			for _, r := range resolve(p, map[string]bool{}) {
				if r == iss.ID || seenParent[r] {
					continue
				}
				seenParent[r] = true
				parents = append(parents, r)
			}
		}
		if parents == nil {
			parents = []string{}
		}
		clone.ParentIDs = parents
		out = append(out, clone)
	}
	return out, removedIssues
}
