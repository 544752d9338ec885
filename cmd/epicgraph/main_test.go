package main

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"epicgraph/internal/config"
	"epicgraph/internal/interact"
	"epicgraph/internal/ui"
)

type noopProgram struct {
	err error
}

func (p noopProgram) Run() (tea.Model, error) {
	return nil, p.err
}

func TestRunProgram(t *testing.T) {
	app := ui.NewApp(ui.Config{})

	if err := runProgram(app, func(*ui.App) programRunner { return noopProgram{} }); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := runProgram(app, nil); err == nil {
		t.Fatal("expected error for nil factory")
	}
	if err := runProgram(app, func(*ui.App) programRunner { return nil }); err == nil {
		t.Fatal("expected error for nil program")
	}
	boom := errors.New("boom")
	err := runProgram(app, func(*ui.App) programRunner { return noopProgram{err: boom} })
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped run error, got %v", err)
	}
}

func TestParseEdits(t *testing.T) {
	edits, err := parseEdits("a:b, c:d", "x:y", "s:old:new")
	if err != nil {
		t.Fatalf("parseEdits: %v", err)
	}
	want := []interact.EdgeEdit{
		{Kind: interact.EdgeCreate, SourceID: "a", TargetID: "b"},
		{Kind: interact.EdgeCreate, SourceID: "c", TargetID: "d"},
		{Kind: interact.EdgeDelete, SourceID: "x", TargetID: "y"},
		{Kind: interact.EdgeRetarget, SourceID: "s", OldTargetID: "old", TargetID: "new"},
	}
	if len(edits) != len(want) {
		t.Fatalf("expected %d edits, got %d", len(want), len(edits))
	}
	for i := range want {
		if edits[i] != want[i] {
			t.Errorf("edit %d: expected %+v, got %+v", i, want[i], edits[i])
		}
	}
}

func TestParseEditsRejectsMalformed(t *testing.T) {
	cases := []struct {
		name              string
		add, remove, move string
	}{
		{name: "missing target", add: "a"},
		{name: "empty id", remove: "a: "},
		{name: "move needs three ids", move: "a:b"},
		{name: "too many ids", add: "a:b:c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseEdits(tc.add, tc.remove, tc.move); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseEditsEmpty(t *testing.T) {
	edits, err := parseEdits("", " , ", "")
	if err != nil || len(edits) != 0 {
		t.Fatalf("expected no edits, got %v (%v)", edits, err)
	}
}

func TestRunOptionsBatch(t *testing.T) {
	if (runOptions{}).batch() {
		t.Fatal("plain run should open the viewer")
	}
	if !(runOptions{jsonOutput: true}).batch() {
		t.Fatal("json output runs in batch mode")
	}
	if !(runOptions{edits: []interact.EdgeEdit{{}}}).batch() {
		t.Fatal("edits run in batch mode")
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cleanup := config.ResetForTesting(t)
	defer cleanup()

	visited := map[string]struct{}{"db-path": {}, "debug": {}}
	if err := applyFlagOverrides(visited, " /tmp/beads.db ", "http", true); err != nil {
		t.Fatalf("applyFlagOverrides: %v", err)
	}
	if got := config.GetString(config.KeyDatabasePath); got != "/tmp/beads.db" {
		t.Fatalf("expected db path override, got %q", got)
	}
	if !config.GetBool(config.KeyDebug) {
		t.Fatal("expected debug override")
	}
	if got := config.GetString(config.KeyBeadsBackend); got != "cli" {
		t.Fatalf("backend flag was not set explicitly, expected default, got %q", got)
	}
}

func TestResolveEpic(t *testing.T) {
	t.Chdir(t.TempDir())
	cleanup := config.ResetForTesting(t)
	defer cleanup()

	if got, err := resolveEpic("ab-1", nil); err != nil || got != "ab-1" {
		t.Fatalf("flag should win, got %q (%v)", got, err)
	}
	if _, err := resolveEpic("", nil); err == nil {
		t.Fatal("expected error without flag, prompt or remembered epic")
	}

	got, err := resolveEpic("", func() (string, error) { return "ab-7", nil })
	if err != nil || got != "ab-7" {
		t.Fatalf("expected prompted epic, got %q (%v)", got, err)
	}
	got, err = resolveEpic("", nil)
	if err != nil || got != "ab-7" {
		t.Fatalf("expected remembered epic, got %q (%v)", got, err)
	}

	boom := errors.New("interrupted")
	if _, err := resolveEpic("", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("expected prompt error, got %v", err)
	}
}
