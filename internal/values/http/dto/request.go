// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	appvalidation "github.com/allisson/refvault/internal/validation"
)

// CreateSecureValueRequest contains the parameters for sealing a new value.
// Value is base64-encoded on the wire. Label is optional; when present the
// value can later be referenced as {secure#label} in author text.
type CreateSecureValueRequest struct {
	Value []byte `json:"value" binding:"required"`
	Label string `json:"label"`
}

// Validate checks if the create secure value request is valid.
func (r *CreateSecureValueRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			validation.Length(1, 0),
		),
		validation.Field(&r.Label,
			validation.When(r.Label != "", appvalidation.LabelRule{}),
		),
	)
}

// UpdateSecureValueRequest contains the replacement plaintext for an existing value.
type UpdateSecureValueRequest struct {
	Value []byte `json:"value" binding:"required"`
}

// Validate checks if the update secure value request is valid.
func (r *UpdateSecureValueRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			validation.Length(1, 0),
		),
	)
}
