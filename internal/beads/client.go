package beads

import (
	"context"
	"fmt"
	"strings"
)

// Reader loads issues from a tracker.
type Reader interface {
	Export(ctx context.Context) ([]FullIssue, error)
}

// Writer mutates dependencies. fromID depends on toID: for a "blocks"
// dependency, toID blocks fromID.
type Writer interface {
	AddDependency(ctx context.Context, fromID, toID, depType string) error
	RemoveDependency(ctx context.Context, fromID, toID, depType string) error
}

// Client is the full surface epicgraph needs from a tracker.
type Client interface {
	Reader
	Writer
}

// Writer backends.
const (
	BackendCLI  = "cli"
	BackendHTTP = "http"
)

// Options selects how a Client reads and writes.
type Options struct {
	// DBPath is the SQLite database read for issues.
	DBPath string
	// Backend picks the writer: BackendCLI (default) or BackendHTTP.
	Backend string
	// Binary overrides the CLI executable (default "br").
	Binary string
	// BaseURL and Token configure the HTTP writer.
	BaseURL string
	Token   string
}

// NewClient builds a Client that reads from SQLite and writes through the
// configured backend.
func NewClient(opts Options) (Client, error) {
	if strings.TrimSpace(opts.DBPath) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	var w Writer
	switch strings.TrimSpace(opts.Backend) {
	case "", BackendCLI:
		w = NewCLIWriter(WithBinaryPath(opts.Binary), WithDatabasePath(opts.DBPath))
	case BackendHTTP:
		if strings.TrimSpace(opts.BaseURL) == "" {
			return nil, fmt.Errorf("beads.url is required for the http backend")
		}
		w = NewHTTPWriter(opts.BaseURL, opts.Token)
	default:
		return nil, fmt.Errorf("unknown backend: %q (must be %q or %q)", opts.Backend, BackendCLI, BackendHTTP)
	}
	return NewSQLiteClient(opts.DBPath, w), nil
}
