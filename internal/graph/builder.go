package graph

import (
	"strconv"
	"strings"

	"epicgraph/internal/beads"
)

const (
	sprintLabelPrefix   = "sprint:"
	estimateLabelPrefix = "estimate:"
)

// Builder converts raw beads issues into the dependency graph of one epic.
type Builder struct {
	// IncludeExternal adds blockers from outside the epic as nodes flagged
	// IsNonEpicIssue. When false they stay as dangling parent ids.
	IncludeExternal bool
	// Sprint marks issues labelled with this sprint as IsChosenSprint.
	Sprint string
}

// NewBuilder creates a new Builder instance.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build collects every transitive parent-child descendant of epicID and maps
// their "blocks" dependencies to ParentIDs. The result keeps the order of
// issues and is validated before it is returned.
func (b Builder) Build(issues []beads.FullIssue, epicID string) (Graph, error) {
	byID := make(map[string]*beads.FullIssue, len(issues))
	for i := range issues {
		byID[issues[i].ID] = &issues[i]
	}
	if _, ok := byID[epicID]; !ok {
		return nil, epicNotFoundError(epicID)
	}

	children := childIndex(issues)
	members := map[string]bool{}
	queue := []string{epicID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if child == epicID || members[child] {
				continue
			}
			members[child] = true
			queue = append(queue, child)
		}
	}

	g := make(Graph, 0, len(members))
	external := map[string]bool{}
	var externalOrder []string
	for i := range issues {
		iss := &issues[i]
		if !members[iss.ID] {
			continue
		}
		node := b.convert(iss)
		for _, blocker := range node.ParentIDs {
			if members[blocker] || external[blocker] {
				continue
			}
			if _, known := byID[blocker]; known && b.IncludeExternal {
				external[blocker] = true
				externalOrder = append(externalOrder, blocker)
			}
		}
		g = append(g, node)
	}

	for _, id := range externalOrder {
		node := b.convert(byID[id])
		node.IsNonEpicIssue = true
		node.ParentIDs = []string{}
		g = append(g, node)
	}

	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (b Builder) convert(iss *beads.FullIssue) Issue {
	node := Issue{
		ID:           iss.ID,
		Ref:          iss.ID,
		Title:        iss.Title,
		Body:         iss.Description,
		HTMLURL:      iss.ExternalRef,
		Assignees:    []string{},
		PipelineName: iss.Status,
		ParentIDs:    []string{},
	}
	if a := strings.TrimSpace(iss.Assignee); a != "" {
		node.Assignees = append(node.Assignees, a)
	}

	seen := map[string]bool{}
	for _, dep := range iss.Dependencies {
		if dep.Type != beads.DepBlocks || dep.TargetID == iss.ID || seen[dep.TargetID] {
			continue
		}
		seen[dep.TargetID] = true
		node.ParentIDs = append(node.ParentIDs, dep.TargetID)
	}

	for _, label := range iss.Labels {
		switch {
		case strings.HasPrefix(label, sprintLabelPrefix):
			sprint := strings.TrimPrefix(label, sprintLabelPrefix)
			node.Sprints = append(node.Sprints, sprint)
			if b.Sprint != "" && sprint == b.Sprint {
				node.IsChosenSprint = true
			}
		case strings.HasPrefix(label, estimateLabelPrefix):
			if v, err := strconv.ParseFloat(strings.TrimPrefix(label, estimateLabelPrefix), 64); err == nil {
				node.Estimate = &v
			}
		}
	}
	return node
}

// childIndex maps parent id -> child ids from parent-child links recorded on
// either side of the relationship.
func childIndex(issues []beads.FullIssue) map[string][]string {
	children := make(map[string][]string)
	seen := make(map[[2]string]bool)
	add := func(parent, child string) {
		key := [2]string{parent, child}
		if seen[key] {
			return
		}
		seen[key] = true
		children[parent] = append(children[parent], child)
	}
	for _, iss := range issues {
		for _, dep := range iss.Dependencies {
			if dep.Type == beads.DepParentChild {
				add(dep.TargetID, iss.ID)
			}
		}
		for _, dep := range iss.Dependents {
			if dep.Type == beads.DepParentChild {
				add(iss.ID, dep.ID)
			}
		}
	}
	return children
}

// Epics returns the issues that can be displayed as a graph, in input order.
func Epics(issues []beads.FullIssue) []beads.FullIssue {
	var out []beads.FullIssue
	for _, iss := range issues {
		if iss.IssueType == beads.IssueTypeEpic {
			out = append(out, iss)
		}
	}
	return out
}
