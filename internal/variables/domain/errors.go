package domain

import (
	"github.com/allisson/refvault/internal/errors"
)

// ErrDuplicateLabel indicates an attempt to create a label that already
// exists. The store is left unchanged.
var ErrDuplicateLabel = errors.Wrap(errors.ErrConflict, "duplicate label")
