// Package domain defines the domain model for variables: plaintext named
// values addressed by an opaque reference id, the unencrypted sibling of the
// secure value store.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Variable represents one stored plaintext value.
type Variable struct {
	// ID is the unique row identifier (UUIDv7).
	ID uuid.UUID
	// RefID is the short opaque token embedded in canonical text.
	RefID string
	// Value is the stored plaintext.
	Value string
	// Label is the optional unique human-readable name.
	Label *string
	// CreatedAt is the UTC timestamp when the variable was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last value change.
	UpdatedAt time.Time
}
