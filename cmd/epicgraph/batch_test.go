package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"epicgraph/internal/graph"
	"epicgraph/internal/interact"
	"epicgraph/internal/layout"
	"epicgraph/internal/reconcile"
	"epicgraph/internal/session"
)

type staticSource graph.Graph

func (s staticSource) FetchGraph(context.Context, string) (graph.Graph, error) {
	return graph.Clone(graph.Graph(s)), nil
}

func testSession(remote reconcile.Remote) *session.Session {
	g := graph.Graph{
		{ID: "a", Ref: "ref-a", ParentIDs: []string{}},
		{ID: "b", Ref: "ref-b", ParentIDs: []string{"a"}},
		{ID: "c", Ref: "ref-c", ParentIDs: []string{}},
	}
	return session.New(staticSource(g), remote, nil, nil, layout.DefaultSettings())
}

func TestRunBatchPrintsPending(t *testing.T) {
	var out bytes.Buffer
	err := runBatch(context.Background(), testSession(nil), batchOptions{
		epicID: "epic",
		edits: []interact.EdgeEdit{
			{Kind: interact.EdgeDelete, SourceID: "a", TargetID: "b"},
			{Kind: interact.EdgeCreate, SourceID: "a", TargetID: "c"},
		},
	}, &out, nil)
	if err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Pending: 0 to add, 0 to remove, 1 to move") {
		t.Fatalf("expected summary, got:\n%s", got)
	}
	if !strings.Contains(got, "~ a->b => c") {
		t.Fatalf("expected retarget line, got:\n%s", got)
	}
}

func TestRunBatchRejectsCycle(t *testing.T) {
	var out bytes.Buffer
	err := runBatch(context.Background(), testSession(nil), batchOptions{
		epicID: "epic",
		edits:  []interact.EdgeEdit{{Kind: interact.EdgeCreate, SourceID: "b", TargetID: "a"}},
	}, &out, nil)
	if err == nil || !strings.Contains(err.Error(), "rejected: add b->a") {
		t.Fatalf("expected rejection, got %v", err)
	}
}

func TestRunBatchJSON(t *testing.T) {
	var out bytes.Buffer
	err := runBatch(context.Background(), testSession(nil), batchOptions{epicID: "epic", jsonOutput: true}, &out, nil)
	if err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	var report layoutReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out.String())
	}
	if report.Epic != "epic" || len(report.Layout.Nodes) != 3 || len(report.Layout.Links) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Pending) != 0 {
		t.Fatalf("expected no pending ops, got %v", report.Pending)
	}
}

func TestRunBatchCommit(t *testing.T) {
	var calls []reconcile.Mutation
	remote := reconcile.RemoteFunc(func(_ context.Context, m reconcile.Mutation) error {
		calls = append(calls, m)
		return nil
	})
	var asked string
	var out bytes.Buffer
	err := runBatch(context.Background(), testSession(remote), batchOptions{
		epicID: "epic",
		edits:  []interact.EdgeEdit{{Kind: interact.EdgeCreate, SourceID: "c", TargetID: "b"}},
		commit: true,
	}, &out, func(q string) bool {
		asked = q
		return true
	})
	if err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if asked != "Commit 1 to add, 0 to remove, 0 to move?" {
		t.Fatalf("unexpected confirmation %q", asked)
	}
	if len(calls) != 1 || calls[0] != (reconcile.Mutation{Kind: reconcile.AddDependency, BlockingRef: "ref-c", BlockedRef: "ref-b"}) {
		t.Fatalf("unexpected mutations %+v", calls)
	}
	if !strings.Contains(out.String(), "Applied 1/1 changes") {
		t.Fatalf("expected progress, got:\n%s", out.String())
	}
}

func TestRunBatchCommitDeclined(t *testing.T) {
	remote := reconcile.RemoteFunc(func(context.Context, reconcile.Mutation) error {
		t.Fatal("remote must not be called")
		return nil
	})
	var out bytes.Buffer
	err := runBatch(context.Background(), testSession(remote), batchOptions{
		epicID: "epic",
		edits:  []interact.EdgeEdit{{Kind: interact.EdgeDelete, SourceID: "a", TargetID: "b"}},
		commit: true,
	}, &out, func(string) bool { return false })
	if err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if !strings.Contains(out.String(), "Commit cancelled") {
		t.Fatalf("expected cancellation, got:\n%s", out.String())
	}
}

func TestRunBatchCommitFailure(t *testing.T) {
	boom := errors.New("tracker down")
	remote := reconcile.RemoteFunc(func(context.Context, reconcile.Mutation) error { return boom })
	var out bytes.Buffer
	err := runBatch(context.Background(), testSession(remote), batchOptions{
		epicID: "epic",
		edits:  []interact.EdgeEdit{{Kind: interact.EdgeDelete, SourceID: "a", TargetID: "b"}},
		commit: true,
	}, &out, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if !strings.Contains(out.String(), "Applied 0/1 changes") {
		t.Fatalf("expected progress line, got:\n%s", out.String())
	}
}
