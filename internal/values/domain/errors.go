package domain

import (
	"github.com/allisson/refvault/internal/errors"
)

var (
	// ErrDuplicateLabel indicates an attempt to create a label that already
	// exists. The store is left unchanged.
	ErrDuplicateLabel = errors.Wrap(errors.ErrConflict, "duplicate label")

	// ErrAuthFailure indicates AEAD tag verification failed: corrupted or
	// tampered ciphertext. The value is unrecoverable.
	ErrAuthFailure = errors.Wrap(errors.ErrInvalidInput, "authentication failure")
)
