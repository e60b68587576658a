// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	execDomain "github.com/allisson/refvault/internal/exec/domain"
	appvalidation "github.com/allisson/refvault/internal/validation"
)

// CreateCommandRequest contains the parameters for storing a command.
type CreateCommandRequest struct {
	CommandID string `json:"command_id" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Label     string `json:"label"`
}

// Validate checks if the create command request is valid.
func (r *CreateCommandRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CommandID, validation.Required, appvalidation.RefIDRule{}),
		validation.Field(&r.Kind,
			validation.Required,
			validation.In(string(execDomain.ShellCommand), string(execDomain.StaticCommand)),
		),
		validation.Field(&r.Body, validation.Required),
		validation.Field(&r.Label,
			validation.When(r.Label != "", appvalidation.LabelRule{}),
		),
	)
}

// CommandResponse represents a stored command in API responses.
type CommandResponse struct {
	ID        string    `json:"id"`
	CommandID string    `json:"command_id"`
	Label     *string   `json:"label,omitempty"`
	Kind      string    `json:"kind"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListCommandsResponse wraps a list of stored commands.
type ListCommandsResponse struct {
	Commands []CommandResponse `json:"commands"`
}

// MapCommandToResponse converts a domain command to an API response.
func MapCommandToResponse(command *execDomain.Command) CommandResponse {
	return CommandResponse{
		ID:        command.ID.String(),
		CommandID: command.CommandID,
		Label:     command.Label,
		Kind:      string(command.Kind),
		Body:      command.Body,
		CreatedAt: command.CreatedAt,
		UpdatedAt: command.UpdatedAt,
	}
}

// MapCommandsToListResponse converts domain commands to a list response.
func MapCommandsToListResponse(commands []*execDomain.Command) ListCommandsResponse {
	out := ListCommandsResponse{
		Commands: make([]CommandResponse, 0, len(commands)),
	}
	for _, command := range commands {
		out.Commands = append(out.Commands, MapCommandToResponse(command))
	}
	return out
}
