package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/refvault/internal/errors"
	appvalidation "github.com/allisson/refvault/internal/validation"
	variablesDomain "github.com/allisson/refvault/internal/variables/domain"
	valuesService "github.com/allisson/refvault/internal/values/service"
)

// refIDMaxAttempts bounds collision retries when generating a fresh refId.
const refIDMaxAttempts = 5

// variableUseCase implements VariableUseCase.
type variableUseCase struct {
	repo        VariableRepository
	refIDGen    valuesService.RefIDGenerator
	refIDLength int
}

// NewVariableUseCase creates a new VariableUseCase.
func NewVariableUseCase(
	repo VariableRepository,
	refIDGen valuesService.RefIDGenerator,
	refIDLength int,
) VariableUseCase {
	return &variableUseCase{
		repo:        repo,
		refIDGen:    refIDGen,
		refIDLength: refIDLength,
	}
}

// Set stores a value under the given refId, creating the variable when absent.
func (v *variableUseCase) Set(ctx context.Context, refID, value string) (*variablesDomain.Variable, error) {
	if err := validation.Validate(refID, appvalidation.RefIDRule{}); err != nil {
		return nil, appvalidation.WrapValidationError(err)
	}

	existing, err := v.repo.GetByRefID(ctx, refID)
	if err == nil {
		existing.Value = value
		existing.UpdatedAt = time.Now().UTC()
		if err := v.repo.UpdateValue(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return v.create(ctx, refID, value, nil)
}

// SetWithLabel creates a variable with a fresh refId and a unique label.
func (v *variableUseCase) SetWithLabel(ctx context.Context, value, label string) (*variablesDomain.Variable, error) {
	if err := validation.Validate(label, appvalidation.LabelRule{}); err != nil {
		return nil, appvalidation.WrapValidationError(err)
	}

	if _, err := v.repo.GetByLabel(ctx, label); err == nil {
		return nil, variablesDomain.ErrDuplicateLabel
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	refID, err := v.GenerateID(ctx)
	if err != nil {
		return nil, err
	}

	return v.create(ctx, refID, value, &label)
}

// Get retrieves a variable by its reference id.
func (v *variableUseCase) Get(ctx context.Context, refID string) (*variablesDomain.Variable, error) {
	return v.repo.GetByRefID(ctx, refID)
}

// ResolveLabel returns the refId carrying the given label.
func (v *variableUseCase) ResolveLabel(ctx context.Context, label string) (string, error) {
	variable, err := v.repo.GetByLabel(ctx, label)
	if err != nil {
		return "", err
	}
	return variable.RefID, nil
}

// GenerateID returns a fresh refId not used by any existing variable.
func (v *variableUseCase) GenerateID(ctx context.Context) (string, error) {
	for i := 0; i < refIDMaxAttempts; i++ {
		refID, err := v.refIDGen.Generate(v.refIDLength)
		if err != nil {
			return "", err
		}

		_, err = v.repo.GetByRefID(ctx, refID)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return refID, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperrors.New("failed to generate a unique refId")
}

// List returns all variables, newest first.
func (v *variableUseCase) List(ctx context.Context) ([]*variablesDomain.Variable, error) {
	return v.repo.List(ctx)
}

// Delete removes a variable by its reference id.
func (v *variableUseCase) Delete(ctx context.Context, refID string) error {
	return v.repo.Delete(ctx, refID)
}

func (v *variableUseCase) create(ctx context.Context, refID, value string, label *string) (*variablesDomain.Variable, error) {
	now := time.Now().UTC()
	variable := &variablesDomain.Variable{
		ID:        uuid.Must(uuid.NewV7()),
		RefID:     refID,
		Value:     value,
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := v.repo.Create(ctx, variable); err != nil {
		return nil, err
	}
	return variable, nil
}
