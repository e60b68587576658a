package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	material := []byte("0123456789abcdef0123456789abcdef")

	t.Run("fingerprint is stable", func(t *testing.T) {
		assert.Equal(t, Fingerprint(material), Fingerprint(material))
	})

	t.Run("fingerprint is 16 hex characters", func(t *testing.T) {
		assert.Len(t, Fingerprint(material), 16)
	})

	t.Run("different material yields different fingerprint", func(t *testing.T) {
		other := []byte("ffffffffffffffffffffffffffffffff")
		assert.NotEqual(t, Fingerprint(material), Fingerprint(other))
	})
}

func TestAccount(t *testing.T) {
	assert.Equal(t, "v1", Account(1))
	assert.Equal(t, "v42", Account(42))
}
