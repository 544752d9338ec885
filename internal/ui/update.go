package ui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"epicgraph/internal/interact"
	"epicgraph/internal/reconcile"
	"epicgraph/internal/session"
)

// Update handles Bubble Tea messages.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.follow()
		return m, nil
	case loadedMsg:
		if errors.Is(msg.err, session.ErrSuperseded) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.target = m.epicID
			m.setError(msg.err)
			return m, nil
		}
		if msg.epicID != m.epicID {
			m.selected, m.panCol, m.panRow = "", 0, 0
		}
		m.epicID, m.target = msg.epicID, msg.epicID
		m.refresh()
		m.setStatus(fmt.Sprintf("Loaded %d issues", len(m.view.Nodes)))
		return m, nil
	case committedMsg:
		m.committing = false
		m.handleCommitted(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m *App) handleCommitted(msg committedMsg) {
	if msg.err == nil {
		if msg.result.Total == 0 {
			m.setStatus("No changes to commit")
		} else {
			m.setStatus(msg.result.Message())
		}
		return
	}
	var applyErr *reconcile.ApplyError
	if errors.As(msg.err, &applyErr) {
		m.status, m.statusErr = applyErr.Message()+": "+applyErr.Err.Error(), true
		return
	}
	m.setError(msg.err)
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.NextEpic):
		return m, m.switchEpic(1)
	case key.Matches(msg, m.keys.PrevEpic):
		return m, m.switchEpic(-1)
	}
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
		m.follow()
	case key.Matches(msg, m.keys.Up):
		m.selectToward(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.selectToward(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.selectToward(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.selectToward(1, 0)
	case key.Matches(msg, m.keys.Next):
		m.selectNext()
	case key.Matches(msg, m.keys.MoveUp):
		m.nudge(0, -1)
	case key.Matches(msg, m.keys.MoveDown):
		m.nudge(0, 1)
	case key.Matches(msg, m.keys.MoveLeft):
		m.nudge(-1, 0)
	case key.Matches(msg, m.keys.MoveRight):
		m.nudge(1, 0)
	case key.Matches(msg, m.keys.Reset):
		m.afterHistory(true, m.session.ResetPositions(), "Positions reset")
	case key.Matches(msg, m.keys.Undo):
		ok, err := m.session.Undo()
		m.afterHistory(ok, err, "Undone")
	case key.Matches(msg, m.keys.Redo):
		ok, err := m.session.Redo()
		m.afterHistory(ok, err, "Redone")
	case key.Matches(msg, m.keys.EditMode):
		m.toggleEditMode()
	case key.Matches(msg, m.keys.Link):
		m.beginLink()
	case key.Matches(msg, m.keys.NextLink):
		m.cycleLink(1)
	case key.Matches(msg, m.keys.PrevLink):
		m.cycleLink(-1)
	case key.Matches(msg, m.keys.DeleteLink):
		m.deleteLink()
	case key.Matches(msg, m.keys.Drop):
		m.dropOnSelection()
	case key.Matches(msg, m.keys.Cancel):
		m.cancel()
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
	case key.Matches(msg, m.keys.Commit):
		if m.committing {
			return m, nil
		}
		m.committing = true
		m.setStatus("Committing...")
		return m, commitCmd(m.session)
	}
	return m, nil
}

func (m *App) selectToward(dx, dy float64) {
	from, ok := m.view.Node(m.selected)
	if !ok {
		m.refresh()
		return
	}
	if id, ok := nearestInDirection(m.view.Nodes, from, dx, dy); ok {
		m.selectNode(id)
	}
}

func (m *App) selectNext() {
	nodes := m.view.Nodes
	if len(nodes) == 0 {
		return
	}
	for i, n := range nodes {
		if n.ID == m.selected {
			m.selectNode(nodes[(i+1)%len(nodes)].ID)
			return
		}
	}
	m.selectNode(nodes[0].ID)
}

func (m *App) selectNode(id string) {
	if id != m.selected {
		m.link = nil
	}
	m.selected = id
	m.follow()
}

func (m *App) nudge(dx, dy int) {
	if m.selected == "" {
		return
	}
	if err := m.session.Nudge(m.selected, dx, dy); err != nil {
		m.setError(err)
		return
	}
	m.refresh()
}

func (m *App) afterHistory(changed bool, err error, msg string) {
	switch {
	case err != nil:
		m.setError(err)
	case changed:
		m.refresh()
		m.setStatus(msg)
	default:
		m.setStatus("Nothing to change")
	}
}

func (m *App) toggleEditMode() {
	m.editMode = !m.editMode
	if !m.editMode {
		m.edgeDrag = nil
		m.link = nil
		m.setStatus("View mode")
		return
	}
	m.setStatus("Edit mode")
}

// beginLink starts a keyboard edge gesture: from the picked link when there
// is one, otherwise a new dependency out of the selected issue.
func (m *App) beginLink() {
	if !m.editMode {
		m.setStatus("Press e to edit dependencies")
		return
	}
	switch {
	case m.link != nil:
		m.edgeDrag = &interact.EdgeDrag{SourceID: m.link.SourceID, OldTargetID: m.link.TargetID}
		m.setStatus(fmt.Sprintf("Moving %s->%s: select a new target, ⏎ to drop", m.link.SourceID, m.link.TargetID))
	case m.selected != "":
		m.edgeDrag = &interact.EdgeDrag{SourceID: m.selected}
		m.setStatus(fmt.Sprintf("Linking from %s: select a target, ⏎ to drop", m.selected))
	}
	m.pointerEdge = false
}

func (m *App) cycleLink(step int) {
	links := outgoingLinks(m.view, m.selected)
	if len(links) == 0 {
		m.link = nil
		return
	}
	next := 0
	if m.link != nil {
		for i, l := range links {
			if l.TargetID == m.link.TargetID {
				next = (i + step + len(links)) % len(links)
				break
			}
		}
	} else if step < 0 {
		next = len(links) - 1
	}
	m.link = &interact.LinkRef{SourceID: links[next].SourceID, TargetID: links[next].TargetID}
}

func (m *App) deleteLink() {
	if !m.editMode || m.link == nil {
		return
	}
	m.applyEdit(interact.EdgeEdit{Kind: interact.EdgeDelete, SourceID: m.link.SourceID, TargetID: m.link.TargetID})
}

func (m *App) dropOnSelection() {
	if m.edgeDrag == nil {
		return
	}
	var e interact.EdgeEdit
	if n, ok := m.view.Node(m.selected); ok {
		e = m.edgeDrag.Drop(m.mode(), m.view, n.Center())
	}
	m.edgeDrag = nil
	m.applyEdit(e)
}

func (m *App) applyEdit(e interact.EdgeEdit) {
	if e.Kind == interact.EdgeNone {
		m.setStatus("Nothing to change")
		return
	}
	applied, err := m.session.Edit(e)
	switch {
	case err != nil:
		m.setError(err)
		return
	case !applied:
		m.status, m.statusErr = "Dependency rejected", true
		return
	}
	m.link = nil
	m.refresh()
	m.setStatus(pendingText(m.session.Pending()))
}

func pendingText(ops []reconcile.Op) string {
	counts := reconcile.Summary(ops)
	if counts.Total() == 0 {
		return "No pending changes"
	}
	return "Pending: " + counts.String()
}

func (m *App) cancel() {
	switch {
	case m.edgeDrag != nil:
		m.edgeDrag = nil
		m.setStatus("Cancelled")
	case m.link != nil:
		m.link = nil
	default:
		m.status = ""
	}
}

func (m *App) copySelection() {
	if m.selected == "" {
		return
	}
	if err := clipboard.WriteAll(m.selected); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Copied " + m.selected)
}

// handleMouse drives node and edge drags with the left button. Holding ctrl
// edits dependencies without toggling edit mode.
func (m *App) handleMouse(msg tea.MouseMsg) {
	if m.loading || (msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease) {
		return
	}
	p := m.projection().point(msg.X, msg.Y-headerRows)
	mode := interact.Mode{Edit: m.editMode || msg.Ctrl}

	switch msg.Action {
	case tea.MouseActionPress:
		if n, ok := interact.HitNode(m.view, p); ok {
			m.selectNode(n.ID)
		}
		if mode.Edit {
			if d, ok := interact.BeginEdgeDrag(mode, m.view, p); ok {
				m.edgeDrag, m.pointerEdge = d, true
			}
			return
		}
		if d, ok := interact.BeginNodeDrag(m.view, p); ok {
			m.nodeDrag = d
		}
	case tea.MouseActionRelease:
		switch {
		case m.nodeDrag != nil:
			id, pos := m.nodeDrag.End(p, m.session.Settings().Grid(), false)
			m.nodeDrag = nil
			if err := m.session.MoveNode(id, pos); err != nil {
				m.setError(err)
				return
			}
			m.refresh()
		case m.edgeDrag != nil && m.pointerEdge:
			e := m.edgeDrag.Drop(mode, m.view, p)
			m.edgeDrag, m.pointerEdge = nil, false
			m.applyEdit(e)
		}
	}
}
