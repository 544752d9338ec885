package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	resetForTest()
	tmpDir := t.TempDir()
	origGetLogPath := getLogPath
	getLogPath = func() (string, error) {
		return filepath.Join(tmpDir, LogDirName, LogFileName), nil
	}
	t.Cleanup(func() {
		getLogPath = origGetLogPath
		Close()
		resetForTest()
	})
	return filepath.Join(tmpDir, LogDirName, LogFileName)
}

func TestInitDisabled(t *testing.T) {
	resetForTest()

	if err := Init(false); err != nil {
		t.Fatalf("Init(false) failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("Enabled() should be false")
	}
	Log("ignored")
	Logf("ignored %d", 1)
	Since("ignored", time.Now())
}

func TestInitEnabledWritesMessages(t *testing.T) {
	logPath := useTempLog(t)

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	Log("layout computed")
	Logf("rejected edge %s -> %s", "1", "3")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(content)
	for _, want := range []string{"debug log started", "layout computed", "rejected edge 1 -> 3"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected log to contain %q, got:\n%s", want, got)
		}
	}
}

func TestInitTruncatesExistingLog(t *testing.T) {
	logPath := useTempLog(t)

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(logPath, []byte("stale session\n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(content), "stale session") {
		t.Fatalf("expected previous log to be truncated")
	}
}

func TestSinceLogsDuration(t *testing.T) {
	logPath := useTempLog(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	origNow := now
	now = func() time.Time { return base.Add(1500 * time.Microsecond) }
	t.Cleanup(func() { now = origNow })

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	Since("stratify", base)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(content), "stratify took 1.5ms") {
		t.Fatalf("expected timing line, got:\n%s", content)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	useTempLog(t)
	if err := Init(true); err != nil {
		t.Fatalf("Init(true) failed: %v", err)
	}
	Close()
	Close()
}

func TestGetLogPathSuffix(t *testing.T) {
	path, err := GetLogPath()
	if err != nil {
		t.Fatalf("GetLogPath() failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(LogDirName, LogFileName)) {
		t.Fatalf("GetLogPath() = %q", path)
	}
}

func resetForTest() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	enabled = false
	logger = nil
}
