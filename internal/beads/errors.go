package beads

import (
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strings"

	appErrors "epicgraph/internal/errors"
)

var (
	// ErrNotFound indicates the tracker could not find the requested issue.
	ErrNotFound = errors.New("beads: issue not found")
)

const maxErrorSnippetLen = 200

// CLIError wraps errors coming from invoking a beads CLI (br or bd).
type CLIError struct {
	Binary  string
	Command []string
	Output  string
	Err     error
}

func (e CLIError) Error() string {
	bin := e.Binary
	if bin == "" {
		bin = "br"
	}
	if e.Output != "" {
		return fmt.Sprintf("%s %v failed: %s", bin, e.Command, e.Output)
	}
	return fmt.Sprintf("%s %v failed: %v", bin, e.Command, e.Err)
}

func (e CLIError) Unwrap() error {
	return e.Err
}

// APIError is returned by the HTTP writer for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func classifyCLIError(binary string, args []string, err error, output []byte) error {
	if errors.Is(err, exec.ErrNotFound) {
		return appErrors.New(appErrors.CodeCLINotFound, fmt.Sprintf("%s binary not found in PATH", binary), err)
	}
	snippet := strings.TrimSpace(string(output))
	if len(snippet) > maxErrorSnippetLen {
		snippet = snippet[:maxErrorSnippetLen] + "..."
	}
	cliErr := CLIError{Binary: binary, Command: args, Output: snippet, Err: err}
	if strings.Contains(strings.ToLower(snippet), "not found") {
		return appErrors.New(appErrors.CodeNotFound, cliErr.Error(), errors.Join(ErrNotFound, cliErr))
	}
	return appErrors.New(appErrors.CodeCLIFailed, cliErr.Error(), cliErr)
}

func classifyAPIError(err *APIError) error {
	if err.StatusCode == http.StatusNotFound {
		return appErrors.New(appErrors.CodeNotFound, err.Error(), errors.Join(ErrNotFound, err))
	}
	return appErrors.New(appErrors.CodeHTTPFailed, err.Error(), err)
}
