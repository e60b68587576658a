package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/refvault/internal/errors"
)

func TestLabelRule(t *testing.T) {
	rule := LabelRule{}

	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{"valid label", "github-token", false},
		{"valid label with spaces inside", "prod api key", false},
		{"empty label", "", true},
		{"not a string", 42, true},
		{"contains brace", "api{key", true},
		{"contains bracket", "api]key", true},
		{"contains hash", "api#key", true},
		{"contains colon", "api:key", true},
		{"contains pipe", "api|key", true},
		{"contains backtick", "api`key", true},
		{"contains at sign", "api@key", true},
		{"leading whitespace", " token", true},
		{"trailing whitespace", "token ", true},
		{"too long", string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRefIDRule(t *testing.T) {
	rule := RefIDRule{}

	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{"valid refId", "a1B2c3", false},
		{"valid long refId", "a1B2c3d4", false},
		{"empty refId", "", true},
		{"not a string", 1.5, true},
		{"contains dash", "a1-2c3", true},
		{"contains unicode", "a1B2cé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, WrapValidationError(nil))
	})

	t.Run("wraps as invalid input", func(t *testing.T) {
		err := WrapValidationError(LabelRule{}.Validate(""))
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}
