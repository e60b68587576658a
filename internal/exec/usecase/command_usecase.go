package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/refvault/internal/errors"
	execDomain "github.com/allisson/refvault/internal/exec/domain"
	appvalidation "github.com/allisson/refvault/internal/validation"
)

// commandUseCase implements CommandUseCase.
type commandUseCase struct {
	repo CommandRepository
}

// NewCommandUseCase creates a new CommandUseCase.
func NewCommandUseCase(repo CommandRepository) CommandUseCase {
	return &commandUseCase{repo: repo}
}

// Create stores a new command under a canonical id.
func (c *commandUseCase) Create(
	ctx context.Context,
	commandID string,
	kind execDomain.CommandKind,
	body string,
	label *string,
) (*execDomain.Command, error) {
	if err := validation.Validate(commandID, appvalidation.RefIDRule{}); err != nil {
		return nil, appvalidation.WrapValidationError(err)
	}
	if kind != execDomain.ShellCommand && kind != execDomain.StaticCommand {
		return nil, execDomain.ErrUnknownKind
	}
	if body == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "command body cannot be empty")
	}

	if _, err := c.repo.Get(ctx, commandID); err == nil {
		return nil, execDomain.ErrDuplicateCommandID
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if label != nil {
		if err := validation.Validate(*label, appvalidation.LabelRule{}); err != nil {
			return nil, appvalidation.WrapValidationError(err)
		}
		if _, err := c.repo.ResolveLabel(ctx, *label); err == nil {
			return nil, execDomain.ErrDuplicateLabel
		} else if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	command := &execDomain.Command{
		ID:        uuid.Must(uuid.NewV7()),
		CommandID: commandID,
		Label:     label,
		Kind:      kind,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.repo.Create(ctx, command); err != nil {
		return nil, err
	}

	return command, nil
}

// Get retrieves a command by its canonical id.
func (c *commandUseCase) Get(ctx context.Context, commandID string) (*execDomain.Command, error) {
	return c.repo.Get(ctx, commandID)
}

// ResolveLabel returns the canonical id of the command carrying the label.
func (c *commandUseCase) ResolveLabel(ctx context.Context, label string) (string, error) {
	return c.repo.ResolveLabel(ctx, label)
}

// List returns all commands, newest first.
func (c *commandUseCase) List(ctx context.Context) ([]*execDomain.Command, error) {
	return c.repo.List(ctx)
}

// Delete removes a command by its canonical id.
func (c *commandUseCase) Delete(ctx context.Context, commandID string) error {
	return c.repo.Delete(ctx, commandID)
}
