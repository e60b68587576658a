package domain

import (
	apperrors "github.com/allisson/refvault/internal/errors"
)

// Command errors.
var (
	// ErrDuplicateLabel indicates the label is already carried by another command.
	ErrDuplicateLabel = apperrors.Wrap(apperrors.ErrConflict, "duplicate label")

	// ErrDuplicateCommandID indicates the canonical id is already taken.
	ErrDuplicateCommandID = apperrors.Wrap(apperrors.ErrConflict, "duplicate command id")

	// ErrUnknownKind indicates the command kind is not shell or static.
	ErrUnknownKind = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown command kind")
)
