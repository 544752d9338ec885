package reconcile

import (
	"fmt"

	appErrors "epicgraph/internal/errors"
)

func missingRefError(id string) error {
	return appErrors.New(appErrors.CodeMissingRemoteRef, fmt.Sprintf("issue %s has no remote reference", id), nil)
}

func remoteError(m Mutation, err error) error {
	msg := fmt.Sprintf("%s dependency %s blocks %s: %v", m.Kind, m.BlockingRef, m.BlockedRef, err)
	return appErrors.New(appErrors.CodeRemoteFailed, msg, err)
}
