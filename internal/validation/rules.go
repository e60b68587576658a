// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/refvault/internal/errors"
)

// labelForbiddenChars are characters with meaning in the placeholder grammar.
// A label containing any of them could not be referenced back from user text.
const labelForbiddenChars = "{}[]#:|`@"

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// LabelRule validates a human-readable label for secure values and variables.
type LabelRule struct {
	MaxLength int
}

// Validate checks the label length and rejects placeholder grammar characters.
func (l LabelRule) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_label", "label must be a string")
	}

	maxLength := l.MaxLength
	if maxLength == 0 {
		maxLength = 64
	}

	if s == "" {
		return validation.NewError("validation_label_empty", "label cannot be empty")
	}
	if len(s) > maxLength {
		return validation.NewError("validation_label_max_length", "label is too long")
	}
	if strings.ContainsAny(s, labelForbiddenChars) {
		return validation.NewError(
			"validation_label_chars",
			"label cannot contain placeholder delimiter characters",
		)
	}
	if strings.TrimSpace(s) != s {
		return validation.NewError(
			"validation_label_whitespace",
			"label cannot have leading or trailing whitespace",
		)
	}

	return nil
}

// RefIDRule validates an opaque reference identifier.
type RefIDRule struct{}

// Validate checks that the reference id is non-empty alphanumeric.
func (r RefIDRule) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_ref_id", "refId must be a string")
	}

	if s == "" {
		return validation.NewError("validation_ref_id_empty", "refId cannot be empty")
	}
	for _, c := range s {
		if !isAlphanumeric(c) {
			return validation.NewError(
				"validation_ref_id_chars",
				"refId must contain only alphanumeric characters [A-Za-z0-9]",
			)
		}
	}

	return nil
}

// isAlphanumeric checks if a character is alphanumeric [A-Za-z0-9].
func isAlphanumeric(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
