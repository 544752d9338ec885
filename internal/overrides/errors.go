package overrides

import (
	"fmt"

	appErrors "epicgraph/internal/errors"
)

func storageError(op string, err error) error {
	return appErrors.New(appErrors.CodeStorage, fmt.Sprintf("overrides %s: %v", op, err), err)
}
