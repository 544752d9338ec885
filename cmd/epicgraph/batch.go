package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"epicgraph/internal/interact"
	"epicgraph/internal/layout"
	"epicgraph/internal/reconcile"
	"epicgraph/internal/session"
)

// batchOptions drives the non-interactive mode.
type batchOptions struct {
	epicID     string
	edits      []interact.EdgeEdit
	jsonOutput bool
	commit     bool
}

type layoutReport struct {
	Epic    string        `json:"epic"`
	Layout  layout.Layout `json:"layout"`
	Pending []string      `json:"pending"`
}

// runBatch loads the epic, applies the edits, prints the layout or the
// pending ops and optionally commits them. confirm is asked before a commit
// and may be nil.
func runBatch(ctx context.Context, sess *session.Session, opts batchOptions, out io.Writer, confirm func(string) bool) error {
	if err := sess.Load(ctx, opts.epicID); err != nil {
		return fmt.Errorf("load %s: %w", opts.epicID, err)
	}
	for _, e := range opts.edits {
		applied, err := sess.Edit(e)
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("rejected: %s", describeEdit(e))
		}
	}

	ops := sess.Pending()
	if opts.jsonOutput {
		report := layoutReport{Epic: opts.epicID, Layout: sess.Layout(), Pending: opStrings(ops)}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printPending(out, ops)
	}

	if !opts.commit || len(ops) == 0 {
		return nil
	}
	counts := reconcile.Summary(ops)
	if confirm != nil && !confirm(fmt.Sprintf("Commit %s?", counts)) {
		fmt.Fprintln(out, "Commit cancelled")
		return nil
	}
	res, err := sess.Commit(ctx)
	if err != nil {
		var applyErr *reconcile.ApplyError
		if errors.As(err, &applyErr) {
			fmt.Fprintln(out, applyErr.Message())
		}
		return err
	}
	fmt.Fprintln(out, res.Message())
	return nil
}

func opStrings(ops []reconcile.Op) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	return out
}

func printPending(w io.Writer, ops []reconcile.Op) {
	if len(ops) == 0 {
		fmt.Fprintln(w, "No pending changes")
		return
	}
	fmt.Fprintf(w, "Pending: %s\n", reconcile.Summary(ops))
	for _, op := range ops {
		fmt.Fprintf(w, "  %s\n", op)
	}
}
