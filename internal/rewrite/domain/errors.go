package domain

import (
	"github.com/allisson/refvault/internal/errors"
)

var (
	// ErrLabelNotFound indicates an author-time reference to a label that
	// does not exist. The save is aborted for that field.
	ErrLabelNotFound = errors.Wrap(errors.ErrNotFound, "label not found")

	// ErrCycleDetected indicates chain resolution exceeded the recursion
	// depth limit, almost always a reference cycle across commands.
	ErrCycleDetected = errors.New("reference cycle detected: recursion depth limit exceeded")
)
