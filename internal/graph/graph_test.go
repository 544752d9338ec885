package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "epicgraph/internal/errors"
)

func issue(id string, parents ...string) Issue {
	if parents == nil {
		parents = []string{}
	}
	return Issue{ID: id, Ref: "ref-" + id, ParentIDs: parents}
}

func triangle() Graph {
	return Graph{issue("1"), issue("2", "1"), issue("3", "1", "2")}
}

func TestRemoveRedundantAncestorEdges(t *testing.T) {
	g := triangle()
	out := RemoveRedundantAncestorEdges(g)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"2"}, out[2].ParentIDs)
	assert.Equal(t, []string{"1", "2"}, g[2].ParentIDs, "input must not be mutated")
}

func TestRemoveRedundantAncestorEdgesIdempotent(t *testing.T) {
	g := Graph{
		issue("a"),
		issue("b", "a"),
		issue("c", "b"),
		issue("d", "a", "c", "b", "x"),
		issue("e", "d", "a"),
	}
	once := RemoveRedundantAncestorEdges(g)
	twice := RemoveRedundantAncestorEdges(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"c", "x"}, once[3].ParentIDs)
	assert.Equal(t, []string{"d"}, once[4].ParentIDs)
}

func TestCloneIsolation(t *testing.T) {
	g := triangle()
	est := 3.0
	g[0].Estimate = &est
	clone := Clone(g)

	require.Equal(t, g, clone)
	clone[2].ParentIDs[0] = "changed"
	clone[2].ParentIDs = append(clone[2].ParentIDs, "extra")
	*clone[0].Estimate = 5

	assert.Equal(t, []string{"1", "2"}, g[2].ParentIDs)
	assert.Equal(t, 3.0, *g[0].Estimate)
	assert.Nil(t, Clone(nil))
}

func TestIsAncestor(t *testing.T) {
	g := triangle()

	assert.True(t, IsAncestor(g, "3", "1"))
	assert.True(t, IsAncestor(g, "2", "1"))
	assert.False(t, IsAncestor(g, "1", "3"))
	assert.False(t, IsAncestor(g, "missing", "1"))
	assert.False(t, IsAncestor(g, "1", "1"))
}

func TestIsAncestorTerminatesOnCycles(t *testing.T) {
	g := Graph{issue("a", "c"), issue("b", "a"), issue("c", "b")}

	assert.True(t, IsAncestor(g, "a", "b"))
	assert.True(t, IsAncestor(g, "a", "a"))
	assert.False(t, IsAncestor(g, "a", "z"))
}

func TestIsAncestorFollowsDanglingIDsNoFurther(t *testing.T) {
	g := Graph{issue("a", "outside")}

	assert.True(t, IsAncestor(g, "a", "outside"))
	assert.False(t, IsAncestor(g, "a", "beyond"))
}

func TestRemoveIssuesMatchingRewiresThroughChains(t *testing.T) {
	g := Graph{
		issue("root"),
		issue("closed1", "root"),
		issue("closed2", "closed1", "other"),
		issue("leaf", "closed2", "root"),
		issue("other"),
	}
	g[1].PipelineName = "closed"
	g[2].PipelineName = "closed"

	out, removed := RemoveIssuesMatching(g, func(iss Issue) bool { return iss.PipelineName == "closed" })

	require.Len(t, removed, 2)
	assert.Equal(t, "closed1", removed[0].ID)
	assert.Equal(t, []string{"root", "leaf", "other"}, out.IDs())
	leaf, ok := out.Find("leaf")
	require.True(t, ok)
	assert.Equal(t, []string{"root", "other"}, leaf.ParentIDs)
	assert.Equal(t, []string{"closed2", "root"}, g[3].ParentIDs, "input must not be mutated")
}

func TestRemoveIssuesMatchingCycleSafe(t *testing.T) {
	g := Graph{issue("a", "b"), issue("b", "a"), issue("c", "a")}

	out, removed := RemoveIssuesMatching(g, func(iss Issue) bool { return iss.ID != "c" })

	assert.Len(t, removed, 2)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].ParentIDs)
	assert.NotNil(t, out[0].ParentIDs)
}

func TestRemoveIssuesMatchingNoMatchReturnsClone(t *testing.T) {
	g := triangle()
	out, removed := RemoveIssuesMatching(g, func(Issue) bool { return false })

	assert.Nil(t, removed)
	assert.Equal(t, g, out)
	out[1].ParentIDs[0] = "x"
	assert.Equal(t, "1", g[1].ParentIDs[0])
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(triangle()))
	require.NoError(t, Validate(Graph{issue("a", "outside")}))

	err := Validate(Graph{issue("a"), issue("a")})
	assert.True(t, appErrors.IsCode(err, appErrors.CodeDuplicateID))

	err = Validate(Graph{issue("")})
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidIssueData))

	err = Validate(Graph{issue("a", "d"), issue("b", "a"), issue("c", "b"), issue("d", "c")})
	require.True(t, appErrors.IsCode(err, appErrors.CodeCyclicDependency))
	assert.Equal(t, "cyclic dependency detected: a -> d -> c -> b -> a", err.Error())
}

func TestEdges(t *testing.T) {
	g := Graph{issue("1"), issue("2", "1", "ext"), issue("3", "2")}
	edges := Edges(g)

	assert.Equal(t, []Edge{{"1", "2"}, {"ext", "2"}, {"2", "3"}}, edges)
	assert.Equal(t, "1->2", edges[0].String())

	reordered := Graph{issue("3", "2"), issue("2", "ext", "1"), issue("1")}
	assert.True(t, SameEdges(g, reordered))
	assert.False(t, SameEdges(g, triangle()))
}

func TestChildren(t *testing.T) {
	children := Children(Graph{issue("1"), issue("2", "1", "ext"), issue("3", "1")})

	assert.Equal(t, []string{"2", "3"}, children["1"])
	assert.NotContains(t, children, "ext")
}
