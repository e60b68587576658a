package dto

import (
	"time"

	valuesDomain "github.com/allisson/refvault/internal/values/domain"
)

// SecureValueResponse represents a secure value in API responses.
// SECURITY: The Value field contains plaintext and is only included in GET
// responses for a single refId. List responses carry metadata only.
type SecureValueResponse struct {
	ID         string    `json:"id"`
	RefID      string    `json:"ref_id"`
	Label      *string   `json:"label,omitempty"`
	KeyVersion uint      `json:"key_version"`
	Value      []byte    `json:"value,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListSecureValuesResponse wraps a list of secure value metadata records.
type ListSecureValuesResponse struct {
	SecureValues []SecureValueResponse `json:"secure_values"`
}

// GetSecureValueResponse carries the decrypted plaintext for one refId.
// SECURITY: Must be transmitted over HTTPS in production.
type GetSecureValueResponse struct {
	RefID string `json:"ref_id"`
	Value []byte `json:"value"`
}

// RewrapResponse reports how many values were re-sealed under the active key.
type RewrapResponse struct {
	Migrated int `json:"migrated"`
}

// MapSecureValueToResponse converts a domain secure value to an API response.
// The plaintext is always excluded; use MapSecureValueToGetResponse for reads.
func MapSecureValueToResponse(value *valuesDomain.SecureValue) SecureValueResponse {
	return SecureValueResponse{
		ID:         value.ID.String(),
		RefID:      value.RefID,
		Label:      value.Label,
		KeyVersion: value.KeyVersion,
		CreatedAt:  value.CreatedAt,
		UpdatedAt:  value.UpdatedAt,
	}
}

// MapSecureValuesToListResponse converts domain secure values to a list response.
func MapSecureValuesToListResponse(values []*valuesDomain.SecureValue) ListSecureValuesResponse {
	out := ListSecureValuesResponse{
		SecureValues: make([]SecureValueResponse, 0, len(values)),
	}
	for _, value := range values {
		out.SecureValues = append(out.SecureValues, MapSecureValueToResponse(value))
	}
	return out
}
