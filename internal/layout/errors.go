package layout

import (
	appErrors "epicgraph/internal/errors"
)

func constructionError(err error) error {
	return appErrors.New(appErrors.CodeGraphConstruction, "cannot lay out graph: "+err.Error(), err)
}
