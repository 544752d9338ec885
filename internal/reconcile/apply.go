package reconcile

import (
	"context"
	"fmt"
	"time"

	"epicgraph/internal/debug"
	"epicgraph/internal/graph"
)

// MutationKind says whether a Mutation adds or removes a dependency.
type MutationKind int

const (
	AddDependency MutationKind = iota
	RemoveDependency
)

func (k MutationKind) String() string {
	if k == AddDependency {
		return "add"
	}
	return "remove"
}

// Mutation is one remote call. Refs are remote identifiers, not display ids.
type Mutation struct {
	Kind        MutationKind
	BlockingRef string
	BlockedRef  string
}

// Remote applies single dependency mutations to the tracker.
type Remote interface {
	MutateDependency(ctx context.Context, m Mutation) error
}

// RemoteFunc adapts a function to Remote.
type RemoteFunc func(ctx context.Context, m Mutation) error

// MutateDependency calls f.
func (f RemoteFunc) MutateDependency(ctx context.Context, m Mutation) error {
	return f(ctx, m)
}

// Result reports a fully applied batch.
type Result struct {
	NextBaseline graph.Graph
	Applied      int
	Total        int
}

// Message is the user-facing progress line.
func (r Result) Message() string {
	return progressMessage(r.Applied, r.Total)
}

// ApplyError is returned when a batch stops early. NextBaseline already
// contains every op that reached the remote, so diffing it against the
// edited graph again yields only the remainder.
type ApplyError struct {
	NextBaseline graph.Graph
	Applied      int
	Total        int
	FailedOp     Op
	Err          error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s; %s failed: %v", progressMessage(e.Applied, e.Total), e.FailedOp, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// Message is the user-facing progress line.
func (e *ApplyError) Message() string {
	return progressMessage(e.Applied, e.Total)
}

func progressMessage(applied, total int) string {
	return fmt.Sprintf("Applied %d/%d changes", applied, total)
}

// Apply sends ops to remote one at a time, in order. Refs are looked up in
// current first and then in baseline. On the first failure it stops and
// returns an *ApplyError carrying the progress made so far.
func Apply(ctx context.Context, remote Remote, baseline, current graph.Graph, ops []Op) (Result, error) {
	start := time.Now()
	defer debug.Since("reconcile: apply", start)

	refs := newRefResolver(current, baseline)
	next := graph.Clone(baseline)
	for i, op := range ops {
		err := ctx.Err()
		if err == nil {
			err = applyRemote(ctx, remote, refs, op)
		}
		if err != nil {
			debug.Logf("reconcile: op %d/%d %s failed: %v", i+1, len(ops), op, err)
			return Result{}, &ApplyError{
				NextBaseline: next,
				Applied:      i,
				Total:        len(ops),
				FailedOp:     op,
				Err:          err,
			}
		}
		next = ApplyOp(next, op)
		debug.Logf("reconcile: applied %s", op)
	}
	return Result{NextBaseline: next, Applied: len(ops), Total: len(ops)}, nil
}

func applyRemote(ctx context.Context, remote Remote, refs refResolver, op Op) error {
	switch op.Kind {
	case OpCreate:
		m, err := refs.mutation(AddDependency, op.Edge.SourceID, op.Edge.TargetID)
		if err != nil {
			return err
		}
		return mutate(ctx, remote, m)
	case OpDelete:
		m, err := refs.mutation(RemoveDependency, op.Edge.SourceID, op.Edge.TargetID)
		if err != nil {
			return err
		}
		return mutate(ctx, remote, m)
	case OpRetarget:
		return retarget(ctx, remote, refs, op)
	default:
		return fmt.Errorf("unknown op kind %v", op.Kind)
	}
}

// retarget creates the new edge before deleting the old one. If the delete
// fails the new edge is removed again; a failing rollback is logged and the
// delete error is returned.
func retarget(ctx context.Context, remote Remote, refs refResolver, op Op) error {
	create, err := refs.mutation(AddDependency, op.Edge.SourceID, op.Edge.TargetID)
	if err != nil {
		return err
	}
	remove, err := refs.mutation(RemoveDependency, op.Edge.SourceID, op.OldTargetID)
	if err != nil {
		return err
	}
	if err := mutate(ctx, remote, create); err != nil {
		return err
	}
	if err := mutate(ctx, remote, remove); err != nil {
		rollback := create
		rollback.Kind = RemoveDependency
		if cerr := remote.MutateDependency(context.WithoutCancel(ctx), rollback); cerr != nil {
			debug.Logf("reconcile: rollback of %s failed: %v", op, cerr)
		}
		return err
	}
	return nil
}

func mutate(ctx context.Context, remote Remote, m Mutation) error {
	if err := remote.MutateDependency(ctx, m); err != nil {
		return remoteError(m, err)
	}
	return nil
}

type refResolver struct {
	graphs []map[string]string
}

func newRefResolver(graphs ...graph.Graph) refResolver {
	r := refResolver{}
	for _, g := range graphs {
		refs := make(map[string]string, len(g))
		for _, iss := range g {
			if _, dup := refs[iss.ID]; !dup {
				refs[iss.ID] = iss.Ref
			}
		}
		r.graphs = append(r.graphs, refs)
	}
	return r
}

func (r refResolver) ref(id string) (string, error) {
	for _, refs := range r.graphs {
		if ref, ok := refs[id]; ok && ref != "" {
			return ref, nil
		}
	}
	return "", missingRefError(id)
}

func (r refResolver) mutation(kind MutationKind, blockingID, blockedID string) (Mutation, error) {
	blocking, err := r.ref(blockingID)
	if err != nil {
		return Mutation{}, err
	}
	blocked, err := r.ref(blockedID)
	if err != nil {
		return Mutation{}, err
	}
	return Mutation{Kind: kind, BlockingRef: blocking, BlockedRef: blocked}, nil
}
