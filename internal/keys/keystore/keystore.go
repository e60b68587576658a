// Package keystore abstracts the platform secret store that holds raw key
// material. The key manager is its only consumer; accounts are named
// "v<version>" within a scope identifying the application.
package keystore

import (
	"context"
)

// KeyStore is the platform secret store seam.
//
// Implementations must return errors.ErrNotFound (wrapped) from Get when the
// account does not exist, so callers can distinguish "never provisioned" from
// "store unreachable".
type KeyStore interface {
	// Put stores material under scope/account, overwriting any existing entry.
	Put(ctx context.Context, scope, account string, material []byte) error

	// Get fetches the material stored under scope/account.
	Get(ctx context.Context, scope, account string) ([]byte, error)

	// Delete removes the entry under scope/account. Deleting a missing entry
	// is not an error.
	Delete(ctx context.Context, scope, account string) error
}
