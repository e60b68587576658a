// Package service provides supporting services for the secure value store.
package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const alphanumericChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RefIDGenerator generates and validates opaque reference identifiers.
type RefIDGenerator interface {
	// Generate creates a cryptographically secure random refId of the specified length.
	Generate(length int) (string, error)

	// Validate checks that a refId contains only allowed characters.
	Validate(refID string) error
}

type alphanumericRefIDGenerator struct{}

// NewRefIDGenerator creates a generator producing random alphanumeric
// identifiers from [A-Za-z0-9].
func NewRefIDGenerator() RefIDGenerator {
	return &alphanumericRefIDGenerator{}
}

// Generate creates a cryptographically secure random refId of the specified length.
// Returns an error if length is less than 1 or greater than 255.
func (g *alphanumericRefIDGenerator) Generate(length int) (string, error) {
	if length < 1 {
		return "", errors.New("length must be at least 1")
	}
	if length > 255 {
		return "", errors.New("length must not exceed 255")
	}

	refID := make([]byte, length)
	charsLen := big.NewInt(int64(len(alphanumericChars)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, charsLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		refID[i] = alphanumericChars[n.Int64()]
	}

	return string(refID), nil
}

// Validate checks that the refId contains only alphanumeric characters [A-Za-z0-9].
func (g *alphanumericRefIDGenerator) Validate(refID string) error {
	if len(refID) == 0 {
		return errors.New("refId cannot be empty")
	}

	for _, c := range refID {
		if !isAlphanumeric(c) {
			return errors.New("refId must contain only alphanumeric characters [A-Za-z0-9]")
		}
	}

	return nil
}

// isAlphanumeric checks if a character is alphanumeric [A-Za-z0-9].
func isAlphanumeric(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
