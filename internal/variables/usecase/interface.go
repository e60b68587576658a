// Package usecase implements the variable store: plaintext named values with
// the same refId addressing scheme as secure values, minus encryption.
package usecase

import (
	"context"

	variablesDomain "github.com/allisson/refvault/internal/variables/domain"
)

// VariableRepository defines persistence operations for variables.
type VariableRepository interface {
	// Create inserts a new variable.
	Create(ctx context.Context, variable *variablesDomain.Variable) error

	// GetByRefID retrieves a variable by its reference id.
	GetByRefID(ctx context.Context, refID string) (*variablesDomain.Variable, error)

	// GetByLabel retrieves a variable by its label.
	GetByLabel(ctx context.Context, label string) (*variablesDomain.Variable, error)

	// UpdateValue replaces the stored value of a variable.
	UpdateValue(ctx context.Context, variable *variablesDomain.Variable) error

	// List retrieves all variables ordered by creation time descending.
	List(ctx context.Context) ([]*variablesDomain.Variable, error)

	// Delete removes a variable by its reference id.
	Delete(ctx context.Context, refID string) error
}

// VariableUseCase manages plaintext values addressed by opaque reference ids.
type VariableUseCase interface {
	// Set stores a value under the given refId, creating the variable when it
	// does not exist yet.
	Set(ctx context.Context, refID, value string) (*variablesDomain.Variable, error)

	// SetWithLabel creates a variable with a fresh refId and a unique label.
	// Returns variablesDomain.ErrDuplicateLabel when the label is taken.
	SetWithLabel(ctx context.Context, value, label string) (*variablesDomain.Variable, error)

	// Get retrieves a variable by its reference id.
	Get(ctx context.Context, refID string) (*variablesDomain.Variable, error)

	// ResolveLabel returns the refId carrying the given label.
	ResolveLabel(ctx context.Context, label string) (string, error)

	// GenerateID returns a fresh refId not used by any existing variable.
	GenerateID(ctx context.Context) (string, error)

	// List returns all variables, newest first.
	List(ctx context.Context) ([]*variablesDomain.Variable, error)

	// Delete removes a variable by its reference id.
	Delete(ctx context.Context, refID string) error
}
