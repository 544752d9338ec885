package remote

import (
	"context"

	"epicgraph/internal/beads"
	"epicgraph/internal/reconcile"
)

// BeadsRemote applies reconcile mutations as beads "blocks" dependencies:
// the blocked issue depends on the blocking one.
type BeadsRemote struct {
	writer beads.Writer
}

// NewBeadsRemote returns a remote writing through w.
func NewBeadsRemote(w beads.Writer) *BeadsRemote {
	return &BeadsRemote{writer: w}
}

// MutateDependency implements reconcile.Remote.
func (r *BeadsRemote) MutateDependency(ctx context.Context, m reconcile.Mutation) error {
	switch m.Kind {
	case reconcile.RemoveDependency:
		return r.writer.RemoveDependency(ctx, m.BlockedRef, m.BlockingRef, beads.DepBlocks)
	default:
		return r.writer.AddDependency(ctx, m.BlockedRef, m.BlockingRef, beads.DepBlocks)
	}
}
