package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasNormalizesNewlines(t *testing.T) {
	canvas := NewCanvas(8, 4)
	canvas.DrawStringAt(0, 0, "A\nB")

	output := canvas.Render()
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 lines, got %d", len(lines))
	}
	if got := strings.TrimSpace(stripANSI(lines[0])); got != "A" {
		t.Fatalf("line 0 mismatch, expected A got %q", got)
	}
	if got := strings.TrimSpace(stripANSI(lines[1])); got != "B" {
		t.Fatalf("line 1 mismatch, expected B got %q", got)
	}
}

func TestCanvasCenterOverlayPositionsContent(t *testing.T) {
	const width, height = 20, 10
	canvas := NewCanvas(width, height)
	canvas.DrawStringAt(0, 0, lipgloss.NewStyle().Width(width).Height(height).Render(""))

	canvas.centerOverlay("AA\nBB", 1, 1)
	lines := strings.Split(canvas.Render(), "\n")

	expectedRow := 4 // computed from topMargin=1, bottomMargin=1, overlay height=2
	if len(lines) <= expectedRow+1 {
		t.Fatalf("not enough lines rendered, got %d", len(lines))
	}
	if idx := strings.Index(stripANSI(lines[expectedRow]), "AA"); idx != 9 {
		t.Fatalf("expected overlay 'AA' centered at column 9, got column %d", idx)
	}
	if idx := strings.Index(stripANSI(lines[expectedRow+1]), "BB"); idx != 9 {
		t.Fatalf("expected overlay 'BB' centered at column 9, got column %d", idx)
	}
}

func TestCanvasBottomRightOverlayAnchorsHint(t *testing.T) {
	const width, height = 30, 6
	canvas := NewCanvas(width, height)

	canvas.bottomRightOverlay("ERR", 1)
	lines := strings.Split(canvas.Render(), "\n")
	targetRow := height - 1 - 1 // padding of 1
	line := stripANSI(lines[targetRow])

	idx := strings.Index(line, "ERR")
	if idx == -1 {
		t.Fatalf("expected hint text in row %d, got %q", targetRow, line)
	}
	if idx < width-len("ERR")-2 {
		t.Fatalf("expected hint near right edge, got column %d", idx)
	}
}

func TestCanvasDrawBlockClipsNegativeOrigin(t *testing.T) {
	canvas := NewCanvas(6, 3)
	canvas.DrawBlockAt(-2, -1, "xxABCD\nyyEFGH")

	lines := strings.Split(canvas.Render(), "\n")
	if got := strings.TrimSpace(stripANSI(lines[0])); got != "EFGH" {
		t.Fatalf("expected clipped block on row 0, got %q", got)
	}
	if got := strings.TrimSpace(stripANSI(lines[1])); got != "" {
		t.Fatalf("expected empty row 1, got %q", got)
	}
}

func TestCanvasDrawCellIgnoresOutOfBounds(t *testing.T) {
	canvas := NewCanvas(4, 2)
	canvas.DrawCell(1, 1, "│", lipgloss.NewStyle())
	canvas.DrawCell(9, 9, "│", lipgloss.NewStyle())
	canvas.DrawCell(-1, 0, "│", lipgloss.NewStyle())

	lines := strings.Split(canvas.Render(), "\n")
	if got := stripANSI(lines[1]); !strings.HasPrefix(got, " │") {
		t.Fatalf("expected glyph at column 1, got %q", got)
	}
	if got := strings.TrimSpace(stripANSI(lines[0])); got != "" {
		t.Fatalf("expected empty row 0, got %q", got)
	}
}
