// Package remote connects the graph core to a beads tracker: BeadsSource
// reads epic graphs and BeadsRemote replays dependency mutations.
package remote

import (
	"context"
	"strings"
	"time"

	"epicgraph/internal/beads"
	"epicgraph/internal/config"
	"epicgraph/internal/debug"
	"epicgraph/internal/graph"
)

// SourceOptions shapes the graphs returned by BeadsSource.
type SourceOptions struct {
	// HidePipelines removes issues in these statuses, rewiring their
	// dependents to the nearest visible blockers. Matching ignores case.
	HidePipelines []string
	// Simplify drops blocking edges implied by other edges.
	Simplify        bool
	IncludeExternal bool
	Sprint          string
}

// SourceOptionsFromConfig reads the graph.* configuration keys.
func SourceOptionsFromConfig() SourceOptions {
	return SourceOptions{
		HidePipelines:   config.GetStringSlice(config.KeyGraphHidePipelines),
		Simplify:        config.GetBool(config.KeyGraphSimplify),
		IncludeExternal: config.GetBool(config.KeyGraphIncludeExternal),
		Sprint:          config.GetString(config.KeyGraphSprint),
	}
}

// BeadsSource builds epic graphs from a beads export.
type BeadsSource struct {
	reader beads.Reader
	opts   SourceOptions
}

// NewBeadsSource returns a source reading through r.
func NewBeadsSource(r beads.Reader, opts SourceOptions) *BeadsSource {
	return &BeadsSource{reader: r, opts: opts}
}

// Epics lists the epics known to the tracker.
func (s *BeadsSource) Epics(ctx context.Context) ([]beads.FullIssue, error) {
	issues, err := s.reader.Export(ctx)
	if err != nil {
		return nil, err
	}
	return graph.Epics(issues), nil
}

// FetchGraph exports the tracker and builds the graph below epicID.
func (s *BeadsSource) FetchGraph(ctx context.Context, epicID string) (graph.Graph, error) {
	start := time.Now()
	issues, err := s.reader.Export(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := graph.Builder{IncludeExternal: s.opts.IncludeExternal, Sprint: s.opts.Sprint}
	g, err := b.Build(issues, epicID)
	if err != nil {
		return nil, err
	}
	if hidden := pipelineSet(s.opts.HidePipelines); len(hidden) > 0 {
		var removed []graph.Issue
		g, removed = graph.RemoveIssuesMatching(g, func(iss graph.Issue) bool {
			return hidden[strings.ToLower(iss.PipelineName)]
		})
		debug.Logf("remote: hid %d issues of %s", len(removed), epicID)
	}
	if s.opts.Simplify {
		g = graph.RemoveRedundantAncestorEdges(g)
	}
	debug.Since("remote: fetch "+epicID, start)
	return g, nil
}

func pipelineSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			set[n] = true
		}
	}
	return set
}
