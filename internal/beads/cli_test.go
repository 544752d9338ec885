package beads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	appErrors "epicgraph/internal/errors"
)

func writeTestScript(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

func readArgsLog(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read args log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestCLIWriterAddDependency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logFile := filepath.Join(dir, "args.log")
	script := filepath.Join(dir, "fakebr.sh")
	writeTestScript(t, script, "#!/bin/sh\necho \"$@\" >> "+logFile+"\n")

	w := NewCLIWriter(WithBinaryPath(script), WithDatabasePath("/tmp/beads.db"))
	if err := w.AddDependency(context.Background(), "eg-from", "eg-to", ""); err != nil {
		t.Fatalf("AddDependency: %v", err)
	}

	lines := readArgsLog(t, logFile)
	if len(lines) != 1 {
		t.Fatalf("expected one invocation, got %q", lines)
	}
	if lines[0] != "--db /tmp/beads.db dep add eg-from eg-to --type blocks" {
		t.Fatalf("unexpected args: %q", lines[0])
	}
}

func TestCLIWriterRemoveDependency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logFile := filepath.Join(dir, "args.log")
	script := filepath.Join(dir, "fakebr.sh")
	writeTestScript(t, script, "#!/bin/sh\necho \"$@\" >> "+logFile+"\n")

	w := NewCLIWriter(WithBinaryPath(script))
	if err := w.RemoveDependency(context.Background(), "eg-from", "eg-to", DepBlocks); err != nil {
		t.Fatalf("RemoveDependency: %v", err)
	}
	if lines := readArgsLog(t, logFile); lines[0] != "dep remove eg-from eg-to" {
		t.Fatalf("unexpected args: %q", lines[0])
	}
}

func TestCLIWriterValidatesIDs(t *testing.T) {
	w := NewCLIWriter(WithBinaryPath("/nonexistent"))
	if err := w.AddDependency(context.Background(), "", "eg-to", DepBlocks); err == nil {
		t.Fatal("expected error for empty from id")
	}
	if err := w.RemoveDependency(context.Background(), "eg-from", " ", DepBlocks); err == nil {
		t.Fatal("expected error for empty to id")
	}
}

func TestCLIWriterClassifiesFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	failing := filepath.Join(dir, "failing.sh")
	writeTestScript(t, failing, "#!/bin/sh\necho 'database locked' >&2\nexit 1\n")
	missing := filepath.Join(dir, "missing.sh")
	writeTestScript(t, missing, "#!/bin/sh\necho 'Error: issue eg-x not found' >&2\nexit 1\n")

	err := NewCLIWriter(WithBinaryPath(failing)).AddDependency(context.Background(), "eg-a", "eg-b", DepBlocks)
	if !appErrors.IsCode(err, appErrors.CodeCLIFailed) {
		t.Fatalf("expected CodeCLIFailed, got %v (%s)", err, appErrors.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "database locked") {
		t.Fatalf("expected output snippet in error, got %v", err)
	}

	err = NewCLIWriter(WithBinaryPath(missing)).RemoveDependency(context.Background(), "eg-a", "eg-x", DepBlocks)
	if !appErrors.IsCode(err, appErrors.CodeNotFound) {
		t.Fatalf("expected CodeNotFound, got %v", err)
	}

	err = NewCLIWriter(WithBinaryPath("epicgraph-no-such-binary")).AddDependency(context.Background(), "eg-a", "eg-b", DepBlocks)
	if !appErrors.IsCode(err, appErrors.CodeCLINotFound) {
		t.Fatalf("expected CodeCLINotFound, got %v", err)
	}
}

func TestCLIErrorTruncatesOutput(t *testing.T) {
	long := strings.Repeat("x", maxErrorSnippetLen+50)
	err := classifyCLIError("br", []string{"dep", "add"}, os.ErrInvalid, []byte(long))
	if !strings.HasSuffix(err.Error(), "...") {
		t.Fatalf("expected truncated snippet, got %q", err.Error())
	}
}
