package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefIDGenerator_Generate(t *testing.T) {
	g := NewRefIDGenerator()

	t.Run("generates refId of requested length", func(t *testing.T) {
		refID, err := g.Generate(6)
		require.NoError(t, err)
		assert.Len(t, refID, 6)
		assert.NoError(t, g.Validate(refID))
	})

	t.Run("generated refIds are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			refID, err := g.Generate(6)
			require.NoError(t, err)
			assert.False(t, seen[refID], "duplicate refId generated: %s", refID)
			seen[refID] = true
		}
	})

	t.Run("rejects zero length", func(t *testing.T) {
		_, err := g.Generate(0)
		assert.Error(t, err)
	})

	t.Run("rejects excessive length", func(t *testing.T) {
		_, err := g.Generate(256)
		assert.Error(t, err)
	})
}

func TestRefIDGenerator_Validate(t *testing.T) {
	g := NewRefIDGenerator()

	tests := []struct {
		name    string
		refID   string
		wantErr bool
	}{
		{"valid refId", "a1B2c3", false},
		{"empty refId", "", true},
		{"refId with dash", "a1-2c3", true},
		{"refId with space", "a1 2c3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Validate(tt.refID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
