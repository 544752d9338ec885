package ui

import (
	"context"
	"errors"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"epicgraph/internal/graph"
	"epicgraph/internal/layout"
	"epicgraph/internal/overrides"
	"epicgraph/internal/reconcile"
	"epicgraph/internal/session"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}

type graphSource map[string]graph.Graph

func (g graphSource) FetchGraph(_ context.Context, epicID string) (graph.Graph, error) {
	out, ok := g[epicID]
	if !ok {
		return nil, errors.New("unknown epic " + epicID)
	}
	return graph.Clone(out), nil
}

func testIssue(id, title string, parents ...string) graph.Issue {
	if parents == nil {
		parents = []string{}
	}
	return graph.Issue{ID: id, Ref: "ref-" + id, Title: title, ParentIDs: parents}
}

// a blocks b; c stands alone.
func testGraph() graph.Graph {
	return graph.Graph{
		testIssue("a", "Schema"),
		testIssue("b", "API", "a"),
		testIssue("c", "Docs"),
	}
}

func newTestApp(t *testing.T, remote reconcile.Remote) *App {
	t.Helper()
	s := session.New(graphSource{"epic": testGraph()}, remote, overrides.NewStore(nil), nil, layout.DefaultSettings())
	app := NewApp(Config{Session: s, EpicID: "epic", Version: "v0.1.0", OutputFormat: "plain"})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	msg := app.Init()()
	app.Update(msg)
	if app.loading || app.statusErr {
		t.Fatalf("load failed: %q", app.status)
	}
	return app
}

// newSwitchingApp shows "epic" and can switch to "other" (x blocks y).
func newSwitchingApp(t *testing.T) (*App, *overrides.Store) {
	t.Helper()
	src := graphSource{
		"epic":  testGraph(),
		"other": {testIssue("x", "Spike"), testIssue("y", "Rollout", "x")},
	}
	store := overrides.NewStore(nil)
	s := session.New(src, nil, store, nil, layout.DefaultSettings())
	app := NewApp(Config{Session: s, EpicID: "epic", Epics: []string{"epic", "other"}, OutputFormat: "plain"})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	app.Update(app.Init()())
	if app.loading || app.statusErr {
		t.Fatalf("load failed: %q", app.status)
	}
	return app, store
}

func runeKey(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func pressKey(app *App, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "shift+down":
			msg = tea.KeyMsg{Type: tea.KeyShiftDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		app.Update(msg)
	}
}

// screenCell is the terminal cell under the center of node id.
func screenCell(t *testing.T, app *App, id string) (int, int) {
	t.Helper()
	n, ok := app.view.Node(id)
	if !ok {
		t.Fatalf("node %s not in layout", id)
	}
	col, row := app.projection().cell(n.Center())
	return col, row + headerRows
}

func mouse(app *App, action tea.MouseAction, x, y int, ctrl bool) {
	app.Update(tea.MouseMsg{X: x, Y: y, Ctrl: ctrl, Action: action, Button: tea.MouseButtonLeft})
}
