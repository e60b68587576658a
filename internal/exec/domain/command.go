// Package domain defines the command execution model: stored commands
// addressed by canonical id, and the textual/structured results chain
// resolution substitutes into user text.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommandKind selects how a stored command produces its result.
type CommandKind string

const (
	// ShellCommand runs its body through the shell and captures stdout.
	ShellCommand CommandKind = "shell"
	// StaticCommand returns its body verbatim (stored clipboard-like item).
	StaticCommand CommandKind = "static"
)

// Command is one stored executable entry.
type Command struct {
	// ID is the unique row identifier (UUIDv7).
	ID uuid.UUID
	// CommandID is the canonical id embedded in chain references.
	CommandID string
	// Label is the optional unique human-readable name.
	Label *string
	// Kind selects shell execution or static content.
	Kind CommandKind
	// Body is the shell script or the static text.
	Body string
	// CreatedAt is the UTC timestamp when the command was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last edit.
	UpdatedAt time.Time
}

// Result is what running a command yields.
type Result struct {
	// Text is the raw textual output.
	Text string
	// Structured holds the output as JSON when it is JSON-shaped.
	Structured string
	// IsStructured reports whether Structured is populated.
	IsStructured bool
}
