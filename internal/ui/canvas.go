package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas is a lightweight helper around cellbuf.Screen that lets us compose
// lipgloss-rendered strings into a cell buffer before turning the frame back
// into a string for Bubble Tea.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes the provided block starting at x,y. Newlines are
// normalized so each line begins at column 0 relative to x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.writer.PrintCropAt(x, y, normalizeForCellbuf(content), "")
}

// DrawCell writes a single styled glyph. Cells outside the canvas are ignored.
func (c *Canvas) DrawCell(x, y int, glyph string, style lipgloss.Style) {
	if c == nil || x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.writer.PrintCropAt(x, y, style.Render(glyph), "")
}

// DrawBlockAt writes a multi-line block whose top-left corner may lie outside
// the canvas; the visible part is kept.
func (c *Canvas) DrawBlockAt(x, y int, block string) {
	if c == nil {
		return
	}
	for i, line := range splitOverlayLines(block) {
		row := y + i
		if row < 0 || line == "" {
			continue
		}
		if row >= c.height {
			break
		}
		if x < 0 {
			line = cutLeft(line, -x)
			if line == "" {
				continue
			}
			c.writer.PrintCropAt(0, row, line, "")
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// centerOverlay renders the provided overlay centered within the canvas,
// respecting the top/bottom margins so headers/footers remain visible.
func (c *Canvas) centerOverlay(overlay string, topMargin, bottomMargin int) {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}

	overlayHeight := len(lines)
	overlayWidth := min(maxLineWidth(lines), c.width)
	topMargin = max(topMargin, 0)
	bottomMargin = max(bottomMargin, 0)

	usableHeight := max(c.height-topMargin-bottomMargin, overlayHeight)
	startY := topMargin
	if usableHeight > overlayHeight {
		startY = topMargin + (usableHeight-overlayHeight)/2
	}
	startY = min(startY, c.height-bottomMargin-overlayHeight)
	startY = max(startY, topMargin, 0)
	startX := max((c.width-overlayWidth)/2, 0)

	c.drawLines(startX, startY, lines)
}

// bottomRightOverlay positions the overlay anchored to the bottom-right corner
// with the provided padding inside the canvas.
func (c *Canvas) bottomRightOverlay(overlay string, padding int) {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}
	padding = max(padding, 0)
	startY := max(c.height-len(lines)-padding, 0)
	startX := max(c.width-maxLineWidth(lines)-padding, 0)
	c.drawLines(startX, startY, lines)
}

func (c *Canvas) drawLines(x, y int, lines []string) {
	x, y = max(x, 0), max(y, 0)
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame as a newline-delimited string suitable for
// Bubble Tea consumption.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func normalizeForCellbuf(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\n", "\r\n")
}

func splitOverlayLines(content string) []string {
	if content == "" {
		return nil
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, lipgloss.Width(line))
	}
	return widest
}
