// Package reconcile diffs an edited graph against its baseline and replays
// the difference against a remote tracker.
package reconcile

import (
	"fmt"

	"epicgraph/internal/graph"
)

// Kind tags the variant of an Op.
type Kind int

const (
	OpCreate Kind = iota
	OpDelete
	OpRetarget
)

func (k Kind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	case OpRetarget:
		return "retarget"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is one pending dependency change. For OpCreate and OpDelete, Edge is the
// edge being added or removed. For OpRetarget, Edge is the new edge and
// OldTargetID the target it moves away from.
type Op struct {
	Kind        Kind       `json:"kind"`
	Edge        graph.Edge `json:"edge"`
	OldTargetID string     `json:"oldTargetId,omitempty"`
}

// Create returns an op adding e.
func Create(e graph.Edge) Op { return Op{Kind: OpCreate, Edge: e} }

// Delete returns an op removing e.
func Delete(e graph.Edge) Op { return Op{Kind: OpDelete, Edge: e} }

// Retarget returns an op moving sourceID->oldTargetID to sourceID->newTargetID.
func Retarget(sourceID, oldTargetID, newTargetID string) Op {
	return Op{
		Kind:        OpRetarget,
		Edge:        graph.Edge{SourceID: sourceID, TargetID: newTargetID},
		OldTargetID: oldTargetID,
	}
}

func (o Op) String() string {
	switch o.Kind {
	case OpCreate:
		return "+ " + o.Edge.String()
	case OpDelete:
		return "- " + o.Edge.String()
	case OpRetarget:
		return fmt.Sprintf("~ %s->%s => %s", o.Edge.SourceID, o.OldTargetID, o.Edge.TargetID)
	default:
		return o.Kind.String()
	}
}

// Counts tallies ops by kind.
type Counts struct {
	Creates   int `json:"creates"`
	Deletes   int `json:"deletes"`
	Retargets int `json:"retargets"`
}

// Total is the number of ops counted.
func (c Counts) Total() int { return c.Creates + c.Deletes + c.Retargets }

func (c Counts) String() string {
	return fmt.Sprintf("%d to add, %d to remove, %d to move", c.Creates, c.Deletes, c.Retargets)
}

// Summary counts ops by kind.
func Summary(ops []Op) Counts {
	var c Counts
	for _, op := range ops {
		switch op.Kind {
		case OpCreate:
			c.Creates++
		case OpDelete:
			c.Deletes++
		case OpRetarget:
			c.Retargets++
		}
	}
	return c
}
