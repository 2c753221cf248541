// AngelaMos | 2026
// cipher_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipherRoundTrip(t *testing.T) {
	c, err := NewCipher("unit-test-key")
	require.NoError(t, err)

	sealed, err := c.Encrypt("DE89370400440532013000")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "DE89370400440532013000")

	again, err := c.Encrypt("DE89370400440532013000")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per call")

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "DE89370400440532013000", plain)
}

func TestCipherRejectsTamperingAndForeignKeys(t *testing.T) {
	c, err := NewCipher("unit-test-key")
	require.NoError(t, err)
	other, err := NewCipher("another-key")
	require.NoError(t, err)

	sealed, err := c.Encrypt("12345678")
	require.NoError(t, err)

	_, err = other.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrCiphertextInvalid)

	tampered := []byte(sealed)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}
	_, err = c.Decrypt(string(tampered))
	assert.ErrorIs(t, err, ErrCiphertextInvalid)

	_, err = c.Decrypt("short")
	assert.ErrorIs(t, err, ErrCiphertextInvalid)

	_, err = c.Decrypt("not base64 !")
	assert.ErrorIs(t, err, ErrCiphertextInvalid)
}

func TestNewCipherRequiresKey(t *testing.T) {
	_, err := NewCipher("")
	assert.Error(t, err)
}
