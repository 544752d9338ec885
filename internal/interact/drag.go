package interact

import (
	"epicgraph/internal/edit"
	"epicgraph/internal/geom"
	"epicgraph/internal/layout"
	"epicgraph/internal/overrides"
)

// NodeDrag tracks a node being moved. The grab offset keeps the node from
// jumping so its center sits under the pointer.
type NodeDrag struct {
	ID     string
	origin geom.Point
	grab   geom.Point
}

// BeginNodeDrag starts dragging the node under p.
func BeginNodeDrag(l layout.Layout, p geom.Point) (*NodeDrag, bool) {
	n, ok := HitNode(l, p)
	if !ok {
		return nil, false
	}
	return &NodeDrag{ID: n.ID, origin: n.Center(), grab: p}, true
}

// Position is the unsnapped node center for pointer p.
func (d *NodeDrag) Position(p geom.Point) geom.Point {
	return d.origin.Add(p.Sub(d.grab))
}

// End finishes the drag at p and returns the override to store. The point is
// snapped when snap is set.
func (d *NodeDrag) End(p geom.Point, grid overrides.Grid, snap bool) (string, geom.Point) {
	pos := d.Position(p)
	if snap {
		pos = grid.Snap(pos)
	}
	return d.ID, pos
}

// EdgeEditKind is the dependency change an edge drag resolves to.
type EdgeEditKind int

const (
	EdgeNone EdgeEditKind = iota
	EdgeCreate
	EdgeDelete
	EdgeRetarget
)

// EdgeEdit is the outcome of an edge drag.
type EdgeEdit struct {
	Kind        EdgeEditKind
	SourceID    string
	OldTargetID string
	TargetID    string
}

// EdgeDrag tracks a dependency being drawn from a node, or an existing link
// being moved by its target end.
type EdgeDrag struct {
	SourceID    string
	OldTargetID string
}

// BeginEdgeDrag starts an edge gesture at p. It only starts in edit mode.
// Over a node it draws a new edge out of that node; over a link it picks the
// link up by its target end.
func BeginEdgeDrag(mode Mode, l layout.Layout, p geom.Point) (*EdgeDrag, bool) {
	if !mode.Edit {
		return nil, false
	}
	target := TargetAt(l, p)
	switch {
	case target.NodeID != "":
		return &EdgeDrag{SourceID: target.NodeID}, true
	case target.Link != nil:
		return &EdgeDrag{SourceID: target.Link.SourceID, OldTargetID: target.Link.TargetID}, true
	default:
		return nil, false
	}
}

// Drop resolves the gesture at p. A new edge dropped on a node creates it. A
// moved link dropped on another node is retargeted and dropped on empty space
// it is deleted. Dropping back where it started does nothing. Leaving edit
// mode before the drop cancels the gesture.
func (d *EdgeDrag) Drop(mode Mode, l layout.Layout, p geom.Point) EdgeEdit {
	if !mode.Edit {
		return EdgeEdit{}
	}
	n, onNode := HitNode(l, p)
	if d.OldTargetID == "" {
		if !onNode || n.ID == d.SourceID {
			return EdgeEdit{}
		}
		return EdgeEdit{Kind: EdgeCreate, SourceID: d.SourceID, TargetID: n.ID}
	}
	switch {
	case !onNode:
		return EdgeEdit{Kind: EdgeDelete, SourceID: d.SourceID, TargetID: d.OldTargetID}
	case n.ID == d.OldTargetID:
		return EdgeEdit{}
	default:
		return EdgeEdit{Kind: EdgeRetarget, SourceID: d.SourceID, OldTargetID: d.OldTargetID, TargetID: n.ID}
	}
}

// Editor is the subset of edit.Controller gestures act on.
type Editor interface {
	CreateEdge(sourceID, targetID string) edit.Result
	DeleteEdge(sourceID, targetID string) edit.Result
	RetargetEdge(sourceID, oldTargetID, newTargetID string) edit.Result
}

// Apply performs e against ed. EdgeNone yields a zero Result.
func Apply(ed Editor, e EdgeEdit) edit.Result {
	switch e.Kind {
	case EdgeCreate:
		return ed.CreateEdge(e.SourceID, e.TargetID)
	case EdgeDelete:
		return ed.DeleteEdge(e.SourceID, e.TargetID)
	case EdgeRetarget:
		return ed.RetargetEdge(e.SourceID, e.OldTargetID, e.TargetID)
	default:
		return edit.Result{}
	}
}
