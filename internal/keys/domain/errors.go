package domain

import (
	"github.com/allisson/refvault/internal/errors"
)

var (
	// ErrKeyMaterialMissing indicates the platform key store no longer holds
	// material for a recorded key version (e.g., the store was cleared
	// out-of-band). Ciphertexts sealed under that version are unrecoverable.
	ErrKeyMaterialMissing = errors.Wrap(errors.ErrUnavailable, "key material missing")

	// ErrVersionNotFound indicates no metadata row exists for the requested version.
	ErrVersionNotFound = errors.Wrap(errors.ErrNotFound, "key version not found")
)
