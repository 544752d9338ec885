// Package interact turns pointer gestures over a layout into node moves and
// dependency edits. Edit affordances depend on an explicit Mode value that
// callers pass in; nothing here keeps global modifier state.
package interact

// Mode is the interaction state of the viewer.
type Mode struct {
	// Edit is set while the edit modifier is held or edit mode is toggled on.
	Edit bool
}

// Target is what the pointer is over.
type Target struct {
	NodeID string
	// Link is set when the pointer is over a link instead of a node.
	Link *LinkRef
}

// LinkRef names a drawn link.
type LinkRef struct {
	SourceID string
	TargetID string
}

// Empty reports whether the pointer is over nothing.
func (t Target) Empty() bool {
	return t.NodeID == "" && t.Link == nil
}

// Affordances lists the edit handles to show.
type Affordances struct {
	// EdgeHandle shows the handle for dragging a new edge out of a node.
	EdgeHandle bool
	// LinkHandle shows the handle for dragging or deleting a link.
	LinkHandle bool
}

// AffordancesFor returns the handles visible in mode over target. They only
// appear in edit mode and only over a node or link.
func AffordancesFor(mode Mode, target Target) Affordances {
	if !mode.Edit {
		return Affordances{}
	}
	return Affordances{
		EdgeHandle: target.NodeID != "",
		LinkHandle: target.Link != nil,
	}
}
