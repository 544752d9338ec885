package graph

import (
	"fmt"
	"strings"

	appErrors "epicgraph/internal/errors"
)

func cyclicDependencyError(path []string) error {
	return appErrors.New(appErrors.CodeCyclicDependency, fmt.Sprintf("cyclic dependency detected: %s", strings.Join(path, " -> ")), nil)
}

func duplicateIDError(id string) error {
	return appErrors.New(appErrors.CodeDuplicateID, fmt.Sprintf("duplicate issue id: %s", id), nil)
}

func invalidIssueError(reason string) error {
	return appErrors.New(appErrors.CodeInvalidIssueData, reason, nil)
}

func epicNotFoundError(epicID string) error {
	return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("epic not found: %s", epicID), nil)
}
