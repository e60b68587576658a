// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	keysDomain "github.com/allisson/refvault/internal/keys/domain"
)

// KeyVersionResponse represents key version metadata in API responses.
// Key material itself never leaves the platform key store.
type KeyVersionResponse struct {
	ID          string    `json:"id"`
	Version     uint      `json:"version"`
	Fingerprint string    `json:"fingerprint"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListKeyVersionsResponse wraps a list of key versions.
type ListKeyVersionsResponse struct {
	KeyVersions []KeyVersionResponse `json:"key_versions"`
}

// RotateKeyResponse reports the version created by a rotation.
type RotateKeyResponse struct {
	Version uint `json:"version"`
}

// MapKeyVersionToResponse converts a domain key version to an API response.
func MapKeyVersionToResponse(kv *keysDomain.KeyVersion) KeyVersionResponse {
	return KeyVersionResponse{
		ID:          kv.ID.String(),
		Version:     kv.Version,
		Fingerprint: kv.Fingerprint,
		IsActive:    kv.IsActive,
		CreatedAt:   kv.CreatedAt,
	}
}

// MapKeyVersionsToListResponse converts domain key versions to a list response.
func MapKeyVersionsToListResponse(kvs []*keysDomain.KeyVersion) ListKeyVersionsResponse {
	out := ListKeyVersionsResponse{
		KeyVersions: make([]KeyVersionResponse, 0, len(kvs)),
	}
	for _, kv := range kvs {
		out.KeyVersions = append(out.KeyVersions, MapKeyVersionToResponse(kv))
	}
	return out
}
