package session

import (
	"errors"
	"fmt"

	appErrors "epicgraph/internal/errors"
)

var (
	// ErrNotLoaded is returned by operations that need an epic before Load
	// has succeeded.
	ErrNotLoaded = errors.New("no epic loaded")
	// ErrSuperseded is returned by a Load overtaken by a later Load.
	ErrSuperseded = errors.New("load superseded by a newer one")
)

func unknownIssueError(id string) error {
	return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("issue %s is not in the layout", id), nil)
}
