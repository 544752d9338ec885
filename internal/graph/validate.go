package graph

// Validate checks that ids are unique and that the in-graph blocking
// relationships form a DAG. Dangling parent ids are ignored.
func Validate(g Graph) error {
	seen := make(map[string]bool, len(g))
	for _, iss := range g {
		if iss.ID == "" {
			return invalidIssueError("issue id is required")
		}
		if seen[iss.ID] {
			return duplicateIDError(iss.ID)
		}
		seen[iss.ID] = true
	}
	return ensureAcyclic(g)
}

func ensureAcyclic(g Graph) error {
	byID := newAncestry(g).byID
	visited := make(map[string]bool, len(g))
	onStack := make(map[string]bool)

	var visit func(id string, stack []string) error
	visit = func(id string, stack []string) error {
		if onStack[id] {
			return cyclicDependencyError(cyclePath(append(stack, id)))
		}
		if visited[id] {
			return nil
		}
		onStack[id] = true
		stack = append(stack, id)
		for _, parent := range byID[id].ParentIDs {
			if _, ok := byID[parent]; !ok {
				continue
			}
			if err := visit(parent, stack); err != nil {
				return err
			}
		}
		onStack[id] = false
		visited[id] = true
		return nil
	}

	for _, iss := range g {
		if err := visit(iss.ID, nil); err != nil {
			return err
		}
	}
	return nil
}

// cyclePath trims the DFS stack down to the cycle itself, e.g.
// [a b c d b] -> [b c d b].
func cyclePath(stack []string) []string {
	last := stack[len(stack)-1]
	for i, id := range stack[:len(stack)-1] {
		if id == last {
			return stack[i:]
		}
	}
	return stack
}
