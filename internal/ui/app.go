package ui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"epicgraph/internal/interact"
	"epicgraph/internal/layout"
	"epicgraph/internal/session"
)

const (
	headerRows = 1
	footerRows = 1
	minCanvasW = 20
)

// Config configures the UI application.
type Config struct {
	Session      *session.Session
	EpicID       string
	Epics        []string // Epics reachable with the switch keys, in order
	Version      string   // Version string to display in header
	OutputFormat string
}

// App implements the Bubble Tea model for the dependency graph viewer.
type App struct {
	session *session.Session
	keys    KeyMap
	version string

	width  int
	height int

	epicID string
	epics  []string
	// target is the epic being loaded, or the displayed one when idle.
	target   string
	view     layout.Layout
	selected string
	// link is the outgoing dependency of the selected issue picked with [ ].
	link *interact.LinkRef

	editMode    bool
	edgeDrag    *interact.EdgeDrag
	pointerEdge bool
	nodeDrag    *interact.NodeDrag

	panCol int
	panRow int

	showDetails bool
	showHelp    bool

	status     string
	statusErr  bool
	loading    bool
	committing bool

	renderMarkdown func(string) string
}

// NewApp builds the model. The epic is loaded by Init.
func NewApp(cfg Config) *App {
	return &App{
		session:        cfg.Session,
		keys:           DefaultKeyMap(),
		version:        cfg.Version,
		epicID:         cfg.EpicID,
		epics:          cfg.Epics,
		target:         cfg.EpicID,
		showDetails:    true,
		loading:        cfg.EpicID != "",
		renderMarkdown: buildMarkdownRenderer(cfg.OutputFormat, detailWidth-4),
	}
}

// Init starts loading the configured epic.
func (m *App) Init() tea.Cmd {
	if m.epicID == "" {
		return nil
	}
	return loadCmd(m.session, m.epicID)
}

// switchEpic starts loading the epic step places away from the one shown or
// being loaded. A load still in flight is superseded.
func (m *App) switchEpic(step int) tea.Cmd {
	if len(m.epics) == 0 || (len(m.epics) == 1 && m.epics[0] == m.target) {
		m.setStatus("No other epics")
		return nil
	}
	if m.committing {
		m.setStatus("Wait for the commit to finish")
		return nil
	}
	if !m.loading && len(m.session.Pending()) > 0 {
		m.setStatus("Commit pending changes before switching epic")
		return nil
	}
	i := slices.Index(m.epics, m.target)
	n := len(m.epics)
	next := m.epics[((i+step)%n+n)%n]
	if i < 0 && step < 0 {
		next = m.epics[n-1]
	}
	m.target = next
	m.loading = true
	m.editMode = false
	m.edgeDrag, m.nodeDrag, m.link = nil, nil, nil
	m.setStatus("Loading " + next)
	return loadCmd(m.session, next)
}

func (m *App) mode() interact.Mode {
	return interact.Mode{Edit: m.editMode}
}

func (m *App) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *App) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

// refresh pulls the current layout and keeps the selection on a live node.
func (m *App) refresh() {
	m.view = m.session.Layout()
	if _, ok := m.view.Node(m.selected); !ok {
		m.selected = ""
		m.link = nil
		if len(m.view.Nodes) > 0 {
			m.selected = m.view.Nodes[0].ID
		}
	}
	if m.link != nil && !m.hasLink(*m.link) {
		m.link = nil
	}
	m.follow()
}

func (m *App) hasLink(ref interact.LinkRef) bool {
	for _, l := range m.view.Links {
		if l.SourceID == ref.SourceID && l.TargetID == ref.TargetID {
			return true
		}
	}
	return false
}

// canvasSize is the area left for the graph.
func (m *App) canvasSize() (int, int) {
	w := m.width
	if m.showDetails && w-detailWidth >= minCanvasW {
		w -= detailWidth
	}
	return max(w, 1), max(m.height-headerRows-footerRows, 1)
}

func (m *App) projection() projection {
	return newProjection(m.view.Metrics, m.panCol, m.panRow)
}

// follow pans the canvas so the selected issue is on screen.
func (m *App) follow() {
	n, ok := m.view.Node(m.selected)
	if !ok {
		return
	}
	w, h := m.canvasSize()
	col, row := newProjection(m.view.Metrics, 0, 0).boxOrigin(n.Center())
	if col < m.panCol {
		m.panCol = col
	} else if col+boxCols > m.panCol+w {
		m.panCol = col + boxCols - w
	}
	if row < m.panRow {
		m.panRow = row
	} else if row+boxRows > m.panRow+h {
		m.panRow = row + boxRows - h
	}
	m.panCol = max(m.panCol, 0)
	m.panRow = max(m.panRow, 0)
}
