package graph

// Issue is one node of an epic's dependency graph.
//
// ParentIDs lists the issues that block this one. Entries may name issues that
// are not part of the graph (blockers outside the epic); every algorithm in
// this package tolerates such dangling ids.
type Issue struct {
	ID             string   `json:"id"`
	Ref            string   `json:"ref"`
	Title          string   `json:"title"`
	Body           string   `json:"body,omitempty"`
	HTMLURL        string   `json:"htmlUrl,omitempty"`
	Assignees      []string `json:"assignees"`
	Estimate       *float64 `json:"estimate,omitempty"`
	PipelineName   string   `json:"pipelineName"`
	ParentIDs      []string `json:"parentIds"`
	Sprints        []string `json:"sprints,omitempty"`
	IsChosenSprint bool     `json:"isChosenSprint,omitempty"`
	IsNonEpicIssue bool     `json:"isNonEpicIssue,omitempty"`
}

// Clone returns a copy of the issue that shares no slices or pointers with i.
func (i Issue) Clone() Issue {
	clone := i
	clone.ParentIDs = cloneStrings(i.ParentIDs)
	clone.Assignees = cloneStrings(i.Assignees)
	clone.Sprints = cloneStrings(i.Sprints)
	if i.Estimate != nil {
		v := *i.Estimate
		clone.Estimate = &v
	}
	return clone
}

// HasParent reports whether id is listed as a blocker of i.
func (i Issue) HasParent(id string) bool {
	for _, p := range i.ParentIDs {
		if p == id {
			return true
		}
	}
	return false
}

// Graph is an ordered list of issues. Order is significant: layout uses it as
// the initial ordering inside each layer and diffing reports ops in it.
//
// A Graph value is treated as immutable once published; functions that change
// structure return a new Graph built from Clone.
type Graph []Issue

// Clone deep-copies g. Mutating the clone's ParentIDs never affects g.
func Clone(g Graph) Graph {
	if g == nil {
		return nil
	}
	out := make(Graph, len(g))
	for i, iss := range g {
		out[i] = iss.Clone()
	}
	return out
}

// Index maps each id to its position in g. With duplicate ids the first wins;
// Validate reports duplicates.
func Index(g Graph) map[string]int {
	idx := make(map[string]int, len(g))
	for i, iss := range g {
		if _, dup := idx[iss.ID]; !dup {
			idx[iss.ID] = i
		}
	}
	return idx
}

// Find returns the issue with the given id.
func (g Graph) Find(id string) (Issue, bool) {
	for _, iss := range g {
		if iss.ID == id {
			return iss, true
		}
	}
	return Issue{}, false
}

// IDs returns the issue ids in graph order.
func (g Graph) IDs() []string {
	ids := make([]string, len(g))
	for i, iss := range g {
		ids[i] = iss.ID
	}
	return ids
}

// Edge is a blocking relationship: SourceID blocks TargetID.
type Edge struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

func (e Edge) String() string {
	return e.SourceID + "->" + e.TargetID
}

// Edges flattens g into blocker->blocked pairs, in graph order and then
// ParentIDs order. Dangling parents are included.
func Edges(g Graph) []Edge {
	var edges []Edge
	for _, iss := range g {
		for _, p := range iss.ParentIDs {
			edges = append(edges, Edge{SourceID: p, TargetID: iss.ID})
		}
	}
	return edges
}

// EdgeSet returns the edges of g as a set.
func EdgeSet(g Graph) map[Edge]struct{} {
	set := make(map[Edge]struct{})
	for _, e := range Edges(g) {
		set[e] = struct{}{}
	}
	return set
}

// SameEdges reports whether a and b contain exactly the same blocking pairs.
func SameEdges(a, b Graph) bool {
	sa, sb := EdgeSet(a), EdgeSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for e := range sa {
		if _, ok := sb[e]; !ok {
			return false
		}
	}
	return true
}

// Children maps each issue id to the in-graph issues it blocks, in graph order.
func Children(g Graph) map[string][]string {
	idx := Index(g)
	children := make(map[string][]string, len(g))
	for _, iss := range g {
		for _, p := range iss.ParentIDs {
			if _, ok := idx[p]; ok {
				children[p] = append(children[p], iss.ID)
			}
		}
	}
	return children
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
