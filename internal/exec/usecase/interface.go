// Package usecase implements the command directory: stored commands addressed
// by canonical id, looked up by the runner at execution time and by label at
// canonicalization time.
package usecase

import (
	"context"

	execDomain "github.com/allisson/refvault/internal/exec/domain"
)

// CommandRepository defines persistence operations for stored commands.
type CommandRepository interface {
	// Create inserts a new command.
	Create(ctx context.Context, command *execDomain.Command) error

	// Get retrieves a command by its canonical id.
	Get(ctx context.Context, commandID string) (*execDomain.Command, error)

	// ResolveLabel returns the canonical id of the command carrying the label.
	ResolveLabel(ctx context.Context, label string) (string, error)

	// List retrieves all commands ordered by creation time descending.
	List(ctx context.Context) ([]*execDomain.Command, error)

	// Delete removes a command by its canonical id.
	Delete(ctx context.Context, commandID string) error
}

// CommandUseCase manages the stored command directory.
//
// It satisfies both sides of chain resolution: the runner fetches bodies
// through Get, and the canonicalizer maps labels to ids through ResolveLabel.
type CommandUseCase interface {
	// Create stores a new command under a canonical id.
	// Returns execDomain.ErrDuplicateCommandID when the id is taken and
	// execDomain.ErrDuplicateLabel when the label is taken.
	Create(
		ctx context.Context,
		commandID string,
		kind execDomain.CommandKind,
		body string,
		label *string,
	) (*execDomain.Command, error)

	// Get retrieves a command by its canonical id.
	Get(ctx context.Context, commandID string) (*execDomain.Command, error)

	// ResolveLabel returns the canonical id of the command carrying the label.
	ResolveLabel(ctx context.Context, label string) (string, error)

	// List returns all commands, newest first.
	List(ctx context.Context) ([]*execDomain.Command, error)

	// Delete removes a command by its canonical id.
	Delete(ctx context.Context, commandID string) error
}
