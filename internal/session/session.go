// Package session owns the graphs of the epic on screen: the baseline known
// to match the tracker, the edited current graph, its overrides and layout.
package session

import (
	"context"
	"errors"
	"sync"

	"epicgraph/internal/debug"
	"epicgraph/internal/edit"
	"epicgraph/internal/geom"
	"epicgraph/internal/graph"
	"epicgraph/internal/interact"
	"epicgraph/internal/layout"
	"epicgraph/internal/overrides"
	"epicgraph/internal/reconcile"
)

// Source loads the graph of one epic.
type Source interface {
	FetchGraph(ctx context.Context, epicID string) (graph.Graph, error)
}

// Session is safe for concurrent use. Loads may overlap: a new Load cancels
// the previous one and results of superseded loads are dropped.
type Session struct {
	source   Source
	remote   reconcile.Remote
	store    *overrides.Store
	engine   *layout.Engine
	settings layout.Settings

	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	epicID   string
	baseline graph.Graph
	editor   *edit.Controller
	view     layout.Layout
}

// New returns an empty session. store and engine may be nil; remote is only
// used by Commit.
func New(source Source, remote reconcile.Remote, store *overrides.Store, engine *layout.Engine, settings layout.Settings) *Session {
	if store == nil {
		store = overrides.NewStore(nil)
	}
	return &Session{
		source:   source,
		remote:   remote,
		store:    store,
		engine:   engine,
		settings: settings,
	}
}

// Load fetches epicID and makes it the displayed epic. Any Load still in
// flight is cancelled and will return ErrSuperseded.
func (s *Session) Load(ctx context.Context, epicID string) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	g, err := s.source.FetchGraph(ctx, epicID)
	if err == nil {
		err = s.store.Fetch(ctx, epicID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		debug.Logf("session: dropping stale load of %s", epicID)
		return ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		return err
	}

	editor := edit.NewController(g)
	if err := s.layoutWith(editor, s.store.SnapshotOf(epicID)); err != nil {
		return err
	}
	s.store.Use(epicID)
	s.epicID = epicID
	s.baseline = graph.Clone(g)
	s.editor = editor
	return nil
}

// EpicID returns the displayed epic, or "" before the first Load.
func (s *Session) EpicID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epicID
}

// Layout returns the latest layout.
func (s *Session) Layout() layout.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Graph returns a copy of the edited graph.
func (s *Session) Graph() graph.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return nil
	}
	return s.editor.Graph()
}

// Baseline returns a copy of the graph last known to match the tracker.
func (s *Session) Baseline() graph.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return graph.Clone(s.baseline)
}

// Settings returns the layout settings in use.
func (s *Session) Settings() layout.Settings {
	return s.settings
}

// CanAddEdge reports whether sourceID->targetID would be accepted.
func (s *Session) CanAddEdge(sourceID, targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor != nil && s.editor.CanAddEdge(sourceID, targetID)
}

// Edit applies a dependency edit to the current graph. When it is accepted,
// the positions of the previous layout are pinned as overrides so no node
// moves, and the layout is recomputed.
func (s *Session) Edit(e interact.EdgeEdit) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return false, ErrNotLoaded
	}
	res := interact.Apply(s.editor, e)
	if !res.Applied {
		return false, nil
	}
	s.store.SetMany(res.Positions)
	return true, s.relayoutLocked()
}

// CreateEdge makes sourceID block targetID.
func (s *Session) CreateEdge(sourceID, targetID string) (bool, error) {
	return s.Edit(interact.EdgeEdit{Kind: interact.EdgeCreate, SourceID: sourceID, TargetID: targetID})
}

// DeleteEdge removes the sourceID->targetID dependency.
func (s *Session) DeleteEdge(sourceID, targetID string) (bool, error) {
	return s.Edit(interact.EdgeEdit{Kind: interact.EdgeDelete, SourceID: sourceID, TargetID: targetID})
}

// RetargetEdge moves sourceID->oldTargetID to newTargetID.
func (s *Session) RetargetEdge(sourceID, oldTargetID, newTargetID string) (bool, error) {
	return s.Edit(interact.EdgeEdit{
		Kind:        interact.EdgeRetarget,
		SourceID:    sourceID,
		OldTargetID: oldTargetID,
		TargetID:    newTargetID,
	})
}

// MoveNode pins id at p, snapped to the grid when snapping is on.
func (s *Session) MoveNode(id string, p geom.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return ErrNotLoaded
	}
	if s.settings.Snap {
		p = s.settings.Grid().Snap(p)
	}
	s.store.Set(id, p)
	return s.relayoutLocked()
}

// Nudge moves id by whole grid cells.
func (s *Session) Nudge(id string, dx, dy int) error {
	s.mu.Lock()
	n, ok := s.view.Node(id)
	s.mu.Unlock()
	if !ok {
		return unknownIssueError(id)
	}
	grid := s.settings.Grid()
	return s.MoveNode(id, geom.Point{
		X: n.X + float64(dx)*grid.CellWidth,
		Y: n.Y + float64(dy)*grid.CellHeight,
	})
}

// ResetPositions drops every override of the displayed epic.
func (s *Session) ResetPositions() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return ErrNotLoaded
	}
	s.store.ClearAll()
	return s.relayoutLocked()
}

// Undo reverts the last override change.
func (s *Session) Undo() (bool, error) {
	return s.history(s.store.Undo)
}

// Redo reapplies the last undone override change.
func (s *Session) Redo() (bool, error) {
	return s.history(s.store.Redo)
}

func (s *Session) history(step func() bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return false, ErrNotLoaded
	}
	if !step() {
		return false, nil
	}
	return true, s.relayoutLocked()
}

// Pending returns the ops that would bring the tracker in line with the
// edited graph.
func (s *Session) Pending() []reconcile.Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return nil
	}
	return reconcile.ComputePendingOps(s.baseline, s.editor.Graph())
}

// Commit applies the pending ops. The baseline advances past every op that
// reached the tracker, including on partial failure, so a retry only sends
// the remainder.
func (s *Session) Commit(ctx context.Context) (reconcile.Result, error) {
	s.mu.Lock()
	if s.editor == nil {
		s.mu.Unlock()
		return reconcile.Result{}, ErrNotLoaded
	}
	seq := s.seq
	baseline := graph.Clone(s.baseline)
	current := s.editor.Graph()
	s.mu.Unlock()

	ops := reconcile.ComputePendingOps(baseline, current)
	res, err := reconcile.Apply(ctx, s.remote, baseline, current, ops)
	next := res.NextBaseline
	var applyErr *reconcile.ApplyError
	if errors.As(err, &applyErr) {
		next = applyErr.NextBaseline
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.seq && next != nil {
		s.baseline = next
	}
	return res, err
}

// Flush persists overrides.
func (s *Session) Flush(ctx context.Context) error {
	return s.store.Flush(ctx)
}

func (s *Session) relayoutLocked() error {
	return s.layoutWith(s.editor, s.store.Snapshot())
}

// layoutWith installs the layout of editor's graph under ov. Nothing changes
// when the graph cannot be laid out.
func (s *Session) layoutWith(editor *edit.Controller, ov overrides.Map) error {
	l, err := s.engine.Compute(editor.Graph(), s.settings, ov)
	if err != nil {
		return err
	}
	s.view = l
	editor.SetPositions(l.Positions())
	return nil
}
