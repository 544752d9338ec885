package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"epicgraph/internal/layout"
)

const detailWidth = 44

// renderDetails describes the selected node.
func (m *App) renderDetails(height int) string {
	n, ok := m.view.Node(m.selected)
	if !ok {
		return stylePane.Width(detailWidth - 2).Height(max(height-2, 1)).Render("No issue selected")
	}
	inner := detailWidth - 4

	var b strings.Builder
	b.WriteString(styleID.Render(n.ID))
	b.WriteString("\n")
	b.WriteString(wordwrap.String(n.Issue.Title, inner))
	b.WriteString("\n\n")
	field := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(styleField.Render(name) + truncate(value, inner-12) + "\n")
	}
	field("Status", n.Issue.PipelineName)
	field("Assignee", strings.Join(n.Issue.Assignees, ", "))
	if n.Issue.Estimate != nil {
		field("Estimate", fmt.Sprintf("%g", *n.Issue.Estimate))
	}
	field("Sprints", strings.Join(n.Issue.Sprints, ", "))
	field("Blocked by", strings.Join(n.Issue.ParentIDs, ", "))
	field("Blocks", strings.Join(blockedBy(m.view, n.ID), ", "))
	field("Position", fmt.Sprintf("%g, %g  z %g", n.X, n.Y, n.Z))
	if n.Overridden {
		field("Pinned", "yes")
	}
	if n.Issue.HTMLURL != "" {
		field("Link", n.Issue.HTMLURL)
	}
	if body := strings.TrimSpace(n.Issue.Body); body != "" {
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(body))
	}
	return stylePane.Width(detailWidth - 2).Height(max(height-2, 1)).MaxHeight(height).Render(b.String())
}

func blockedBy(l layout.Layout, id string) []string {
	var out []string
	for _, link := range l.Links {
		if link.SourceID == id {
			out = append(out, link.TargetID)
		}
	}
	return out
}
