// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	appvalidation "github.com/allisson/refvault/internal/validation"
	variablesDomain "github.com/allisson/refvault/internal/variables/domain"
)

// SetVariableRequest contains the parameters for storing a variable.
//
// Two forms are accepted: with RefID the value is upserted under that id, and
// with Label a fresh id is generated and the label attached. Exactly one of
// the two must be provided.
type SetVariableRequest struct {
	RefID string `json:"ref_id"`
	Label string `json:"label"`
	Value string `json:"value" binding:"required"`
}

// Validate checks if the set variable request is valid.
func (r *SetVariableRequest) Validate() error {
	if (r.RefID == "") == (r.Label == "") {
		return validation.NewError(
			"validation_variable_target",
			"exactly one of ref_id and label must be provided",
		)
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.RefID,
			validation.When(r.RefID != "", appvalidation.RefIDRule{}),
		),
		validation.Field(&r.Label,
			validation.When(r.Label != "", appvalidation.LabelRule{}),
		),
		validation.Field(&r.Value, validation.Required),
	)
}

// VariableResponse represents a variable in API responses.
type VariableResponse struct {
	ID        string    `json:"id"`
	RefID     string    `json:"ref_id"`
	Label     *string   `json:"label,omitempty"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListVariablesResponse wraps a list of variables.
type ListVariablesResponse struct {
	Variables []VariableResponse `json:"variables"`
}

// MapVariableToResponse converts a domain variable to an API response.
func MapVariableToResponse(variable *variablesDomain.Variable) VariableResponse {
	return VariableResponse{
		ID:        variable.ID.String(),
		RefID:     variable.RefID,
		Label:     variable.Label,
		Value:     variable.Value,
		CreatedAt: variable.CreatedAt,
		UpdatedAt: variable.UpdatedAt,
	}
}

// MapVariablesToListResponse converts domain variables to a list response.
func MapVariablesToListResponse(variables []*variablesDomain.Variable) ListVariablesResponse {
	out := ListVariablesResponse{
		Variables: make([]VariableResponse, 0, len(variables)),
	}
	for _, variable := range variables {
		out.Variables = append(out.Variables, MapVariableToResponse(variable))
	}
	return out
}
