package beads

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// cliWriter mutates dependencies through the br CLI. The bd CLI accepts the
// same dep subcommands and works via WithBinaryPath.
type cliWriter struct {
	bin     string
	dbArgs  []string
	workDir string
}

// CLIOption configures the CLI writer.
type CLIOption func(*cliWriter)

// WithBinaryPath overrides the command used to invoke the CLI.
func WithBinaryPath(path string) CLIOption {
	return func(c *cliWriter) {
		if strings.TrimSpace(path) != "" {
			c.bin = path
		}
	}
}

// WithDatabasePath sets the beads database path for all CLI invocations.
func WithDatabasePath(path string) CLIOption {
	return func(c *cliWriter) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			c.dbArgs = []string{"--db", trimmed}
		}
	}
}

// WithWorkDir sets the working directory for CLI invocations.
func WithWorkDir(dir string) CLIOption {
	return func(c *cliWriter) {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			c.workDir = trimmed
		}
	}
}

// NewCLIWriter constructs a CLI-backed Writer.
func NewCLIWriter(opts ...CLIOption) Writer {
	w := &cliWriter{bin: "br"}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (c *cliWriter) AddDependency(ctx context.Context, fromID, toID, depType string) error {
	if strings.TrimSpace(fromID) == "" {
		return fmt.Errorf("from ID is required for add dependency")
	}
	if strings.TrimSpace(toID) == "" {
		return fmt.Errorf("to ID is required for add dependency")
	}
	if strings.TrimSpace(depType) == "" {
		depType = DepBlocks
	}
	if _, err := c.run(ctx, "dep", "add", fromID, toID, "--type", depType); err != nil {
		return fmt.Errorf("run %s dep add: %w", c.bin, err)
	}
	return nil
}

func (c *cliWriter) RemoveDependency(ctx context.Context, fromID, toID, _ string) error {
	if strings.TrimSpace(fromID) == "" {
		return fmt.Errorf("from ID is required for remove dependency")
	}
	if strings.TrimSpace(toID) == "" {
		return fmt.Errorf("to ID is required for remove dependency")
	}
	if _, err := c.run(ctx, "dep", "remove", fromID, toID); err != nil {
		return fmt.Errorf("run %s dep remove: %w", c.bin, err)
	}
	return nil
}

func (c *cliWriter) run(ctx context.Context, args ...string) ([]byte, error) {
	finalArgs := make([]string, 0, len(c.dbArgs)+len(args))
	finalArgs = append(finalArgs, c.dbArgs...)
	finalArgs = append(finalArgs, args...)
	//nolint:gosec // G204: CLI wrapper intentionally shells out to the beads command
	cmd := exec.CommandContext(ctx, c.bin, finalArgs...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, classifyCLIError(c.bin, finalArgs, err, out)
	}
	return out, nil
}
