package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"epicgraph/internal/reconcile"
)

// View renders the header, graph canvas, optional details pane and footer.
func (m *App) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	w, h := m.canvasSize()
	c := NewCanvas(w, h)
	switch {
	case m.loading:
		c.centerOverlay(styleFooterMuted.Render("Loading "+m.target+"..."), 0, 0)
	case len(m.view.Nodes) == 0:
		c.centerOverlay(styleFooterMuted.Render("No issues to show"), 0, 0)
	default:
		renderGraph(c, scene{
			layout:   m.view,
			proj:     m.projection(),
			selected: m.selected,
			link:     m.link,
			mode:     m.mode(),
		})
	}
	if m.edgeDrag != nil {
		c.bottomRightOverlay(m.renderDragHint(), 0)
	}
	if m.showHelp {
		c.centerOverlay(m.renderHelp(), 0, 0)
	}

	body := c.Render()
	if w < m.width {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderDetails(h))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m *App) renderHeader() string {
	title := "epicgraph"
	if m.version != "" {
		title += " " + m.version
	}
	parts := []string{styleAppHeader.Render(title)}
	if m.epicID != "" {
		parts = append(parts, styleID.Render(m.epicID))
	}
	if m.editMode {
		parts = append(parts, styleModeEdit.Render("EDIT"))
	}
	if m.session != nil && !m.loading {
		if counts := reconcile.Summary(m.session.Pending()); counts.Total() > 0 {
			parts = append(parts, stylePending.Render(counts.String()))
		}
	}
	return truncate(strings.Join(parts, " "), m.width)
}

func (m *App) renderDragHint() string {
	from := m.edgeDrag.SourceID
	if m.edgeDrag.OldTargetID != "" {
		from += "->" + m.edgeDrag.OldTargetID
	}
	return styleHelpOverlay.Padding(0, 1).Render(fmt.Sprintf("%s  ⏎ drop  Esc cancel", from))
}

func (m *App) renderHelp() string {
	var b strings.Builder
	b.WriteString(styleAppHeader.Render("Keys"))
	b.WriteString("\n\n")
	for i, binding := range m.keys.helpRows() {
		if i > 0 {
			b.WriteString("\n")
		}
		h := binding.Help()
		b.WriteString(styleHelpKey.Width(14).Render(h.Key))
		b.WriteString(styleHelpDesc.Render(h.Desc))
	}
	b.WriteString("\n\n")
	b.WriteString(styleFooterMuted.Render("Ctrl+drag edits dependencies with the mouse"))
	return styleHelpOverlay.Render(b.String())
}
